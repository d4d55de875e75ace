package risk

import (
	"encoding/json"
	"testing"
)

func TestLevelOrdering(t *testing.T) {
	ordered := []Level{LevelMinimal, LevelLow, LevelModerate, LevelHigh, LevelImminent}
	for i := 1; i < len(ordered); i++ {
		if !(ordered[i] > ordered[i-1]) {
			t.Errorf("expected %s > %s", ordered[i], ordered[i-1])
		}
	}
}

func TestMaxLevel(t *testing.T) {
	if got := MaxLevel(); got != LevelMinimal {
		t.Errorf("MaxLevel() = %s, want minimal", got)
	}
	if got := MaxLevel(LevelLow, LevelImminent, LevelModerate); got != LevelImminent {
		t.Errorf("MaxLevel = %s, want imminent", got)
	}
}

func TestLevelJSONRoundTrip(t *testing.T) {
	for l, name := range levelNames {
		b, err := json.Marshal(l)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		if string(b) != `"`+name+`"` {
			t.Errorf("marshal %s = %s", name, b)
		}
		var back Level
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back != l {
			t.Errorf("round trip %s: got %s", name, back)
		}
	}
}

func TestLevelUnmarshalRejectsUnknown(t *testing.T) {
	var l Level
	if err := json.Unmarshal([]byte(`"catastrophic"`), &l); err == nil {
		t.Error("expected error for unknown level string")
	}
}

func TestParseType(t *testing.T) {
	if _, err := ParseType("suicide"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseType("gambling"); err == nil {
		t.Error("expected error for unknown risk type")
	}
}

func TestFactorsForUnknownTypeIsEmptyNotError(t *testing.T) {
	factors := FactorsFor(Type("gambling"))
	if factors == nil || len(factors) != 0 {
		t.Errorf("unknown type factors = %v, want empty list", factors)
	}
}

func TestCatalogWeightsMatchScorerBases(t *testing.T) {
	// The catalog documents the same base weights the scorers apply.
	weights := map[string]int{}
	for _, f := range FactorsFor(TypeSuicide) {
		weights[f.ID] = f.Weight
	}
	if weights["suicide-ideation"] != 2 || weights["suicide-plan"] != 3 ||
		weights["suicide-intent"] != 3 || weights["suicide-means"] != 2 ||
		weights["suicide-prior-attempt"] != 3 || weights["suicide-rehearsal"] != 2 {
		t.Errorf("suicide catalog weights out of sync with scorer: %v", weights)
	}
}
