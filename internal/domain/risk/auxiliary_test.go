package risk

import "testing"

func TestEvaluateSubstance(t *testing.T) {
	cases := []struct {
		name string
		in   SubstanceIndicators
		want Level
	}{
		{"none", SubstanceIndicators{}, LevelMinimal},
		{"judgment only", SubstanceIndicators{ImpairedJudgment: true}, LevelMinimal},
		{"daily use", SubstanceIndicators{DailyUse: true}, LevelLow},
		{"daily plus withdrawal", SubstanceIndicators{DailyUse: true, WithdrawalSymptoms: true}, LevelModerate},
		{"daily withdrawal combination", SubstanceIndicators{DailyUse: true, WithdrawalSymptoms: true, DangerousCombination: true}, LevelHigh},
		{"overdose history alone", SubstanceIndicators{OverdoseHistory: true}, LevelLow},
		{"everything", SubstanceIndicators{DailyUse: true, WithdrawalSymptoms: true, ImpairedJudgment: true, DangerousCombination: true, OverdoseHistory: true}, LevelHigh},
	}
	for _, c := range cases {
		if got := EvaluateSubstance(c.in); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestEvaluatePsychosis(t *testing.T) {
	cases := []struct {
		name string
		in   PsychosisIndicators
		want Level
	}{
		{"none", PsychosisIndicators{}, LevelMinimal},
		{"disorganized only", PsychosisIndicators{DisorganizedThinking: true}, LevelMinimal},
		{"hallucinations", PsychosisIndicators{Hallucinations: true}, LevelLow},
		{"hallucinations and delusions", PsychosisIndicators{Hallucinations: true, Delusions: true}, LevelModerate},
		{"command hallucinations with delusions", PsychosisIndicators{CommandHallucinations: true, Delusions: true}, LevelModerate},
		{"florid", PsychosisIndicators{Hallucinations: true, Delusions: true, CommandHallucinations: true, ImpairedRealityTest: true}, LevelHigh},
	}
	for _, c := range cases {
		if got := EvaluatePsychosis(c.in); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

// No protective offset applies to the indicator evaluators; the scorers take
// no protective input at all, which keeps the asymmetry explicit in the API.
func TestIndicatorLevelThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  Level
	}{
		{0, LevelMinimal}, {1, LevelMinimal},
		{2, LevelLow}, {3, LevelLow},
		{4, LevelModerate}, {5, LevelModerate},
		{6, LevelHigh}, {10, LevelHigh},
	}
	for _, c := range cases {
		if got := indicatorLevel(c.score); got != c.want {
			t.Errorf("indicatorLevel(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}
