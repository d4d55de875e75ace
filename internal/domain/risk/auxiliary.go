package risk

// Auxiliary evaluators are plain indicator-count scorers. Unlike the full
// assessors they take value structs of booleans and apply no protective
// offset. The asymmetry matches current clinical guidance for this tool and
// should be revisited with stakeholders before generalizing.

// SubstanceIndicators are the substance-use screening flags.
type SubstanceIndicators struct {
	DailyUse             bool `json:"daily_use"`
	WithdrawalSymptoms   bool `json:"withdrawal_symptoms"`
	ImpairedJudgment     bool `json:"impaired_judgment"`
	DangerousCombination bool `json:"dangerous_combination"`
	OverdoseHistory      bool `json:"overdose_history"`
}

func (i SubstanceIndicators) score() int {
	score := 0
	if i.DailyUse {
		score += 2
	}
	if i.WithdrawalSymptoms {
		score += 2
	}
	if i.ImpairedJudgment {
		score++
	}
	if i.DangerousCombination {
		score += 2
	}
	if i.OverdoseHistory {
		score += 3
	}
	return score
}

// PsychosisIndicators are the psychosis screening flags.
type PsychosisIndicators struct {
	Hallucinations        bool `json:"hallucinations"`
	Delusions             bool `json:"delusions"`
	DisorganizedThinking  bool `json:"disorganized_thinking"`
	CommandHallucinations bool `json:"command_hallucinations"`
	ImpairedRealityTest   bool `json:"impaired_reality_testing"`
}

func (i PsychosisIndicators) score() int {
	score := 0
	if i.Hallucinations {
		score += 2
	}
	if i.Delusions {
		score += 2
	}
	if i.DisorganizedThinking {
		score++
	}
	if i.CommandHallucinations {
		score += 3
	}
	if i.ImpairedRealityTest {
		score += 2
	}
	return score
}

func indicatorLevel(score int) Level {
	switch {
	case score >= 6:
		return LevelHigh
	case score >= 4:
		return LevelModerate
	case score >= 2:
		return LevelLow
	default:
		return LevelMinimal
	}
}

// EvaluateSubstance maps substance indicators to a level.
func EvaluateSubstance(i SubstanceIndicators) Level {
	return indicatorLevel(i.score())
}

// EvaluatePsychosis maps psychosis indicators to a level.
func EvaluatePsychosis(i PsychosisIndicators) Level {
	return indicatorLevel(i.score())
}
