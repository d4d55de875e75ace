package risk

// RiskFactor is immutable reference data describing one weighted clinical
// factor within a risk type.
type RiskFactor struct {
	ID           string   `json:"id"`
	RiskType     Type     `json:"risk_type"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Weight       int      `json:"weight"`
	Significance string   `json:"significance"` // routine, high, critical
	Questions    []string `json:"questions"`
	Indicators   []string `json:"indicators"`
}

// ProtectiveFactor is immutable reference data describing a circumstance that
// offsets computed risk weight.
type ProtectiveFactor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Questions   []string `json:"questions"`
	Indicators  []string `json:"indicators"`
	Strength    int      `json:"strength"`
}

var riskFactorCatalog = map[Type][]RiskFactor{
	TypeSuicide: {
		{
			ID: "suicide-ideation", RiskType: TypeSuicide, Name: "Suicidal ideation",
			Description:  "Current thoughts of ending one's own life",
			Weight:       2, Significance: "critical",
			Questions:  []string{"Have you had thoughts of killing yourself?", "How intense are these thoughts on a scale of 0 to 10?"},
			Indicators: []string{"reports death wish", "passive or active ideation"},
		},
		{
			ID: "suicide-plan", RiskType: TypeSuicide, Name: "Suicide plan",
			Description:  "A formulated method, time, or place for a suicide attempt",
			Weight:       3, Significance: "critical",
			Questions:  []string{"Do you have a plan for how you would end your life?", "How specific is that plan?"},
			Indicators: []string{"names method", "names time or place"},
		},
		{
			ID: "suicide-intent", RiskType: TypeSuicide, Name: "Intent to act",
			Description:  "Stated intention to carry out a suicide plan",
			Weight:       3, Significance: "critical",
			Questions:  []string{"Do you intend to act on these thoughts?"},
			Indicators: []string{"states intention", "preparatory statements"},
		},
		{
			ID: "suicide-means", RiskType: TypeSuicide, Name: "Access to means",
			Description:  "Ready access to a lethal method",
			Weight:       2, Significance: "high",
			Questions:  []string{"Do you have access to the means you have thought about?"},
			Indicators: []string{"firearm in home", "stockpiled medication"},
		},
		{
			ID: "suicide-prior-attempt", RiskType: TypeSuicide, Name: "Previous attempt",
			Description:  "History of one or more prior suicide attempts",
			Weight:       3, Significance: "critical",
			Questions:  []string{"Have you ever attempted suicide before?", "How many times?"},
			Indicators: []string{"documented prior attempt", "self-reported prior attempt"},
		},
		{
			ID: "suicide-rehearsal", RiskType: TypeSuicide, Name: "Rehearsal behavior",
			Description:  "Practicing or preparing for an attempt",
			Weight:       2, Significance: "critical",
			Questions:  []string{"Have you practiced or prepared for an attempt in any way?"},
			Indicators: []string{"handling means", "visiting a planned site", "writing notes"},
		},
	},
	TypeSelfHarm: {
		{
			ID: "selfharm-urges", RiskType: TypeSelfHarm, Name: "Current urges",
			Description:  "Present urges to self-injure",
			Weight:       2, Significance: "high",
			Questions:  []string{"Are you having urges to hurt yourself right now?", "How strong are those urges, 0 to 10?"},
			Indicators: []string{"reports active urges"},
		},
		{
			ID: "selfharm-method", RiskType: TypeSelfHarm, Name: "Method used",
			Description:  "An established method of self-injury",
			Weight:       1, Significance: "routine",
			Questions:  []string{"What do you do when you hurt yourself?"},
			Indicators: []string{"cutting", "burning", "hitting", "scratching"},
		},
		{
			ID: "selfharm-frequency", RiskType: TypeSelfHarm, Name: "Frequency",
			Description:  "How often self-injury occurs",
			Weight:       2, Significance: "high",
			Questions:  []string{"How often do you hurt yourself?"},
			Indicators: []string{"daily", "weekly", "monthly"},
		},
		{
			ID: "selfharm-medical", RiskType: TypeSelfHarm, Name: "Medical complications",
			Description:  "Self-injury that has required medical attention",
			Weight:       2, Significance: "high",
			Questions:  []string{"Has hurting yourself ever required medical care?"},
			Indicators: []string{"sutures", "infection", "emergency visit"},
		},
		{
			ID: "selfharm-suicide-link", RiskType: TypeSelfHarm, Name: "Suicide linkage",
			Description:  "Self-injury explicitly connected to suicidal thinking",
			Weight:       3, Significance: "critical",
			Questions:  []string{"When you hurt yourself, are you hoping to die?"},
			Indicators: []string{"states wish to die during self-harm"},
		},
	},
	TypeViolence: {
		{
			ID: "violence-homicidal-ideation", RiskType: TypeViolence, Name: "Homicidal ideation",
			Description:  "Thoughts of killing or seriously harming another person",
			Weight:       3, Significance: "critical",
			Questions:  []string{"Have you had thoughts of harming someone else?", "Is there a specific person?"},
			Indicators: []string{"names a target", "detailed threat"},
		},
		{
			ID: "violence-history", RiskType: TypeViolence, Name: "History of violence",
			Description:  "Prior violent incidents",
			Weight:       2, Significance: "high",
			Questions:  []string{"Have you ever physically hurt someone?", "When was the most recent incident?"},
			Indicators: []string{"documented incident", "arrest history"},
		},
		{
			ID: "violence-weapon", RiskType: TypeViolence, Name: "Weapon access",
			Description:  "Access to a weapon",
			Weight:       2, Significance: "high",
			Questions:  []string{"Do you have access to any weapons?", "Do you have access to a firearm?"},
			Indicators: []string{"firearm", "knife", "other weapon"},
		},
		{
			ID: "violence-impulse", RiskType: TypeViolence, Name: "Poor impulse control",
			Description:  "Difficulty restraining aggressive impulses",
			Weight:       2, Significance: "high",
			Questions:  []string{"How well can you stop yourself when you get angry?"},
			Indicators: []string{"property destruction", "physical outbursts"},
		},
		{
			ID: "violence-substance", RiskType: TypeViolence, Name: "Substance use",
			Description:  "Substance use that lowers inhibition",
			Weight:       1, Significance: "routine",
			Questions:  []string{"Do you drink or use drugs when angry?"},
			Indicators: []string{"intoxication during prior incidents"},
		},
		{
			ID: "violence-paranoia", RiskType: TypeViolence, Name: "Paranoid ideation",
			Description:  "Persecutory beliefs about specific people",
			Weight:       2, Significance: "high",
			Questions:  []string{"Do you believe someone is out to harm you?"},
			Indicators: []string{"persecutory delusions"},
		},
		{
			ID: "violence-command", RiskType: TypeViolence, Name: "Command hallucinations",
			Description:  "Voices instructing the patient to harm others",
			Weight:       3, Significance: "critical",
			Questions:  []string{"Do you hear voices telling you to hurt anyone?"},
			Indicators: []string{"reports command hallucinations"},
		},
	},
	TypeSubstance: {
		{ID: "substance-daily-use", RiskType: TypeSubstance, Name: "Daily use", Weight: 2, Significance: "high",
			Description: "Daily or near-daily substance use",
			Questions:   []string{"How often are you using?"}, Indicators: []string{"daily use reported"}},
		{ID: "substance-withdrawal", RiskType: TypeSubstance, Name: "Withdrawal symptoms", Weight: 2, Significance: "high",
			Description: "Physical withdrawal when use stops",
			Questions:   []string{"What happens when you stop using?"}, Indicators: []string{"tremor", "sweats", "seizure history"}},
		{ID: "substance-judgment", RiskType: TypeSubstance, Name: "Impaired judgment", Weight: 1, Significance: "routine",
			Description: "Risk-taking while intoxicated",
			Questions:   []string{"Have you done things while using that you regretted?"}, Indicators: []string{"driving intoxicated"}},
		{ID: "substance-combination", RiskType: TypeSubstance, Name: "Dangerous combination", Weight: 2, Significance: "high",
			Description: "Combining substances with compounding risk",
			Questions:   []string{"Do you mix substances?"}, Indicators: []string{"opioids with benzodiazepines", "alcohol with sedatives"}},
		{ID: "substance-overdose", RiskType: TypeSubstance, Name: "Overdose history", Weight: 3, Significance: "critical",
			Description: "One or more prior overdoses",
			Questions:   []string{"Have you ever overdosed?"}, Indicators: []string{"documented overdose", "naloxone administration"}},
	},
	TypePsychosis: {
		{ID: "psychosis-hallucinations", RiskType: TypePsychosis, Name: "Hallucinations", Weight: 2, Significance: "high",
			Description: "Perceptions without external stimulus",
			Questions:   []string{"Do you see or hear things others do not?"}, Indicators: []string{"auditory hallucinations", "visual hallucinations"}},
		{ID: "psychosis-delusions", RiskType: TypePsychosis, Name: "Delusions", Weight: 2, Significance: "high",
			Description: "Fixed false beliefs",
			Questions:   []string{"Do you hold beliefs others find hard to accept?"}, Indicators: []string{"persecutory", "grandiose", "referential"}},
		{ID: "psychosis-disorganized", RiskType: TypePsychosis, Name: "Disorganized thinking", Weight: 1, Significance: "routine",
			Description: "Loosening of associations, incoherent speech",
			Questions:   []string{"Do people say they have trouble following you?"}, Indicators: []string{"tangential speech", "word salad"}},
		{ID: "psychosis-command", RiskType: TypePsychosis, Name: "Command hallucinations", Weight: 3, Significance: "critical",
			Description: "Voices instructing the patient to act",
			Questions:   []string{"Do the voices tell you to do things?"}, Indicators: []string{"commands to harm self or others"}},
		{ID: "psychosis-insight", RiskType: TypePsychosis, Name: "Impaired reality testing", Weight: 2, Significance: "high",
			Description: "Inability to recognize symptoms as symptoms",
			Questions:   []string{"Do you think these experiences could be part of an illness?"}, Indicators: []string{"no insight", "acts on delusional content"}},
	},
}

var protectiveFactorCatalog = []ProtectiveFactor{
	{ID: "protective-social-support", Name: "Social support", Strength: 1,
		Description: "Reliable family or friends the patient can reach",
		Questions:   []string{"Who could you call if things got worse?"},
		Indicators:  []string{"names specific people", "lives with supportive others"}},
	{ID: "protective-future-goals", Name: "Future orientation", Strength: 1,
		Description: "Concrete plans or goals the patient wants to live for",
		Questions:   []string{"What are you looking forward to?"},
		Indicators:  []string{"names upcoming events", "education or career plans"}},
	{ID: "protective-dependents", Name: "Responsibility for others", Strength: 1,
		Description: "Children, dependents, or pets relying on the patient",
		Questions:   []string{"Who depends on you day to day?"},
		Indicators:  []string{"caregiving role"}},
	{ID: "protective-treatment", Name: "Engagement in treatment", Strength: 1,
		Description: "Active participation in ongoing care",
		Questions:   []string{"Are you attending your appointments?"},
		Indicators:  []string{"medication adherence", "regular attendance"}},
	{ID: "protective-beliefs", Name: "Moral or spiritual objection", Strength: 1,
		Description: "Stated beliefs against suicide or violence",
		Questions:   []string{"Is there anything that would stop you from acting on these thoughts?"},
		Indicators:  []string{"states religious or moral objection"}},
	{ID: "protective-coping", Name: "Coping history", Strength: 1,
		Description: "Past success getting through crises without harm",
		Questions:   []string{"What has helped you get through hard times before?"},
		Indicators:  []string{"names specific strategies"}},
}

// FactorsFor returns the weighted factor list for a risk type. An unrecognized
// type returns an empty list, not an error.
func FactorsFor(t Type) []RiskFactor {
	factors, ok := riskFactorCatalog[t]
	if !ok {
		return []RiskFactor{}
	}
	out := make([]RiskFactor, len(factors))
	copy(out, factors)
	return out
}

// ProtectiveFactors returns the protective-factor table.
func ProtectiveFactors() []ProtectiveFactor {
	out := make([]ProtectiveFactor, len(protectiveFactorCatalog))
	copy(out, protectiveFactorCatalog)
	return out
}
