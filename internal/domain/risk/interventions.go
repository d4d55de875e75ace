package risk

// Immediate interventions are a fixed, level-indexed lookup so the same
// inputs always produce the same action list.

var suicideInterventions = map[Level][]string{
	LevelImminent: {
		"Do not leave the patient alone",
		"Initiate continuous observation",
		"Remove access to lethal means immediately",
		"Arrange emergency psychiatric evaluation",
		"Activate crisis protocol",
	},
	LevelHigh: {
		"Arrange same-day psychiatric evaluation",
		"Develop or update safety plan before the patient leaves",
		"Counsel on means restriction with patient and family",
		"Contact identified support person",
	},
	LevelModerate: {
		"Develop or update safety plan",
		"Schedule follow-up within 48 to 72 hours",
		"Provide crisis hotline and text line numbers",
		"Counsel on means restriction",
	},
	LevelLow: {
		"Provide crisis hotline and text line numbers",
		"Schedule routine follow-up",
		"Review early warning signs with the patient",
	},
	LevelMinimal: {
		"Continue routine care",
		"Reassess at next scheduled visit",
	},
}

var selfHarmInterventions = map[Level][]string{
	LevelHigh: {
		"Assess wounds and arrange medical care if needed",
		"Develop or update safety plan addressing self-harm urges",
		"Schedule follow-up within 48 hours",
		"Teach substitute coping skills for acute urges",
	},
	LevelModerate: {
		"Develop or update safety plan addressing self-harm urges",
		"Schedule follow-up within one week",
		"Teach substitute coping skills for acute urges",
	},
	LevelLow: {
		"Review urge-management strategies",
		"Schedule routine follow-up",
	},
	LevelMinimal: {
		"Continue routine care",
		"Reassess at next scheduled visit",
	},
}

var violenceInterventions = map[Level][]string{
	LevelImminent: {
		"Do not leave the patient unsupervised",
		"Notify security per facility protocol",
		"Arrange emergency psychiatric evaluation",
		"Carry out duty-to-warn procedures if triggered",
		"Activate crisis protocol",
	},
	LevelHigh: {
		"Arrange same-day psychiatric evaluation",
		"Carry out duty-to-warn procedures if triggered",
		"Counsel on weapon removal with patient and family",
		"Develop de-escalation plan with the patient",
	},
	LevelModerate: {
		"Develop de-escalation plan with the patient",
		"Schedule follow-up within 48 to 72 hours",
		"Counsel on weapon removal",
	},
	LevelLow: {
		"Review anger-management strategies",
		"Schedule routine follow-up",
	},
	LevelMinimal: {
		"Continue routine care",
		"Reassess at next scheduled visit",
	},
}

func interventionsFor(table map[Level][]string, level Level) []string {
	actions, ok := table[level]
	if !ok {
		return []string{}
	}
	out := make([]string, len(actions))
	copy(out, actions)
	return out
}
