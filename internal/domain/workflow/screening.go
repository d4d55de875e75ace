package workflow

import (
	"strings"

	"github.com/clinsafe/riskengine/internal/domain/risk"
)

// ScreeningInput carries the initial screening material: free-text concerns
// raised during intake plus explicit yes/no screener items.
type ScreeningInput struct {
	Concerns []string `json:"concerns"`

	SuicidalIdeationReported bool `json:"suicidal_ideation_reported"`
	SelfHarmReported         bool `json:"self_harm_reported"`
	ViolentThoughtsReported  bool `json:"violent_thoughts_reported"`
	SubstanceUseReported     bool `json:"substance_use_reported"`
	PsychosisReported        bool `json:"psychosis_reported"`
}

// screeningKeywords maps intake phrasing to the risk domain it flags. Matching
// is lowercase substring over each concern; screening only flags domains for
// detailed assessment and never assigns a risk level itself.
var screeningKeywords = map[risk.Type][]string{
	risk.TypeSuicide: {
		"suicide", "suicidal", "kill myself", "end my life", "end it all",
		"better off dead", "want to die", "not worth living",
	},
	risk.TypeSelfHarm: {
		"self-harm", "self harm", "cut myself", "cutting", "burn myself",
		"hurt myself",
	},
	risk.TypeViolence: {
		"hurt someone", "hurt them", "kill him", "kill her", "kill them",
		"homicidal", "violent", "revenge", "make them pay",
	},
	risk.TypeSubstance: {
		"drinking", "alcohol", "drugs", "using again", "relapse", "overdose",
		"withdrawal",
	},
	risk.TypePsychosis: {
		"voices", "hearing things", "seeing things", "hallucination",
		"paranoid", "they are watching", "following me",
	},
}

// screeningOrder keeps flagged types in a stable output order.
var screeningOrder = []risk.Type{
	risk.TypeSuicide,
	risk.TypeSelfHarm,
	risk.TypeViolence,
	risk.TypeSubstance,
	risk.TypePsychosis,
}

// Screen returns the risk domains flagged for detailed assessment, in stable
// order without duplicates.
func Screen(in ScreeningInput) []risk.Type {
	flagged := map[risk.Type]bool{
		risk.TypeSuicide:   in.SuicidalIdeationReported,
		risk.TypeSelfHarm:  in.SelfHarmReported,
		risk.TypeViolence:  in.ViolentThoughtsReported,
		risk.TypeSubstance: in.SubstanceUseReported,
		risk.TypePsychosis: in.PsychosisReported,
	}

	for _, concern := range in.Concerns {
		lower := strings.ToLower(concern)
		for t, keywords := range screeningKeywords {
			if flagged[t] {
				continue
			}
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					flagged[t] = true
					break
				}
			}
		}
	}

	out := []risk.Type{}
	for _, t := range screeningOrder {
		if flagged[t] {
			out = append(out, t)
		}
	}
	return out
}
