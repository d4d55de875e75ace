package workflow

import (
	"reflect"
	"testing"

	"github.com/clinsafe/riskengine/internal/domain/risk"
)

func TestScreenKeywordMatching(t *testing.T) {
	tests := []struct {
		name     string
		concerns []string
		want     []risk.Type
	}{
		{
			name:     "suicidal language",
			concerns: []string{"Patient said they would be better off dead"},
			want:     []risk.Type{risk.TypeSuicide},
		},
		{
			name:     "self harm and substance",
			concerns: []string{"reports cutting when stressed", "drinking heavily since March"},
			want:     []risk.Type{risk.TypeSelfHarm, risk.TypeSubstance},
		},
		{
			name:     "violence toward a named person",
			concerns: []string{"says he wants to make them pay for what happened"},
			want:     []risk.Type{risk.TypeViolence},
		},
		{
			name:     "psychotic content",
			concerns: []string{"keeps hearing things at night", "believes they are watching the house"},
			want:     []risk.Type{risk.TypePsychosis},
		},
		{
			name:     "no risk language",
			concerns: []string{"trouble sleeping", "conflict with coworkers"},
			want:     []risk.Type{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Screen(ScreeningInput{Concerns: tc.concerns})
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScreenExplicitFlags(t *testing.T) {
	got := Screen(ScreeningInput{
		SuicidalIdeationReported: true,
		PsychosisReported:        true,
	})
	want := []risk.Type{risk.TypeSuicide, risk.TypePsychosis}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScreenNoDuplicatesAndStableOrder(t *testing.T) {
	in := ScreeningInput{
		Concerns: []string{
			"talked about suicide twice",
			"wants to end my life",
			"using again after relapse",
		},
		SuicidalIdeationReported: true,
	}
	got := Screen(in)
	want := []risk.Type{risk.TypeSuicide, risk.TypeSubstance}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScreenIsCaseInsensitive(t *testing.T) {
	got := Screen(ScreeningInput{Concerns: []string{"PARANOID about neighbors"}})
	if len(got) != 1 || got[0] != risk.TypePsychosis {
		t.Errorf("expected psychosis flag, got %v", got)
	}
}
