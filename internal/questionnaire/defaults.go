package questionnaire

func w(pairs ...any) map[Category]float64 {
	m := make(map[Category]float64, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i].(Category)] = pairs[i+1].(float64)
	}
	return m
}

// Default returns the built-in question banks. Each call returns a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Constitution: []Question{
			{ID: "P1", Prompt: "Natural body frame: thin/slender", Weights: w(Vata, 1.0)},
			{ID: "P2", Prompt: "Tendency for dry, rough skin", Weights: w(Vata, 1.0)},
			{ID: "P3", Prompt: "Variable appetite / digestion", Weights: w(Vata, 1.0)},
			{ID: "P4", Prompt: "Light sleep, easily awakened", Weights: w(Vata, 1.0)},
			{ID: "P5", Prompt: "Quick, changeable mood", Weights: w(Vata, 0.9, Pitta, 0.1)},
			{ID: "P6", Prompt: "Warm body/flush easily", Weights: w(Pitta, 1.0)},
			{ID: "P7", Prompt: "Strong appetite, tolerates spicy", Weights: w(Pitta, 1.0)},
			{ID: "P8", Prompt: "Ambitious, focused under pressure", Weights: w(Pitta, 0.8)},
			{ID: "P9", Prompt: "Calm, steady energy", Weights: w(Kapha, 1.0)},
			{ID: "P10", Prompt: "Good endurance and build", Weights: w(Kapha, 1.0)},
			{ID: "P11", Prompt: "Tendency to gain weight", Weights: w(Kapha, 1.0)},
			{ID: "P12", Prompt: "Slow digestion vs regular digestion", Weights: w(Kapha, 0.7, Vata, 0.3)},
			{ID: "P13", Prompt: "Cold extremities often", Weights: w(Vata, 0.8)},
			{ID: "P14", Prompt: "Perspiration: sweats easily", Weights: w(Pitta, 0.7)},
			{ID: "P15", Prompt: "Memory: quick recall vs steady long-term", Weights: w(Vata, 0.5, Kapha, 0.5)},
			{ID: "P16", Prompt: "Preference for warm foods", Weights: w(Vata, 0.6)},
			{ID: "P17", Prompt: "Tendency for oily skin", Weights: w(Pitta, 0.6, Kapha, 0.4)},
			{ID: "P18", Prompt: "Joint stiffness when inactive", Weights: w(Kapha, 0.8)},
			{ID: "P19", Prompt: "Speech: fast vs slow", Weights: w(Vata, 0.7, Kapha, 0.3)},
			{ID: "P20", Prompt: "Physical strength & stamina", Weights: w(Kapha, 0.7, Pitta, 0.3)},
			{ID: "P21", Prompt: "Prone to allergies/congestion", Weights: w(Kapha, 0.7, Pitta, 0.3)},
			{ID: "P22", Prompt: "Easily excited / enthusiastic", Weights: w(Vata, 0.7, Pitta, 0.3)},
			{ID: "P23", Prompt: "Face color: reddish vs pale", Weights: w(Pitta, 0.8, Kapha, 0.4)},
			{ID: "P24", Prompt: "Thirst level (high/low)", Weights: w(Pitta, 0.7, Kapha, 0.3)},
			{ID: "P25", Prompt: "Tendency for constipation", Weights: w(Vata, 0.9)},
		},
		State: []Question{
			{ID: "V1", Prompt: "Anxiety, restlessness today", Weights: w(Vata, 1.0)},
			{ID: "V2", Prompt: "Racing thoughts, insomnia", Weights: w(Vata, 1.0)},
			{ID: "V3", Prompt: "Cold hands/feet today", Weights: w(Vata, 0.8)},
			{ID: "V4", Prompt: "Excess heat, anger, irritability", Weights: w(Pitta, 1.0)},
			{ID: "V5", Prompt: "Acidity, heartburn, sour belching", Weights: w(Pitta, 1.0)},
			{ID: "V6", Prompt: "Red rashes or inflammation", Weights: w(Pitta, 1.0)},
			{ID: "V7", Prompt: "Heaviness, lethargy, sleepiness", Weights: w(Kapha, 1.0)},
			{ID: "V8", Prompt: "Congestion, phlegm, mucus", Weights: w(Kapha, 1.0)},
			{ID: "V9", Prompt: "Slow digestion, poor appetite", Weights: w(Kapha, 0.8)},
			{ID: "V10", Prompt: "Joint stiffness or swelling", Weights: w(Kapha, 0.7)},
			{ID: "V11", Prompt: "Excess thirst or dry mouth", Weights: w(Pitta, 0.6)},
			{ID: "V12", Prompt: "Loose stools or irregular digestion", Weights: w(Vata, 0.8)},
			{ID: "V13", Prompt: "Excess worrying today", Weights: w(Vata, 0.9)},
			{ID: "V14", Prompt: "Agitation or short temper", Weights: w(Pitta, 0.9)},
			{ID: "V15", Prompt: "Sleep fragmented", Weights: w(Vata, 0.8)},
			{ID: "V16", Prompt: "Sensation of heaviness in the head", Weights: w(Kapha, 0.7)},
			{ID: "V17", Prompt: "Excess sweating", Weights: w(Pitta, 0.5)},
			{ID: "V18", Prompt: "Reduced motivation", Weights: w(Kapha, 0.8)},
			{ID: "V19", Prompt: "Unusual cravings (salty/sweet)", Weights: w(Kapha, 0.6)},
			{ID: "V20", Prompt: "Irritable bowel symptoms", Weights: w(Pitta, 0.6, Vata, 0.4)},
		},
		Personality: []Item{
			{ID: "E1", Prompt: "Outgoing, enthusiastic", Trait: Extraversion},
			{ID: "E6", Prompt: "Reserved, quiet", Trait: Extraversion, Reversed: true},
			{ID: "A1", Prompt: "Often critical", Trait: Agreeableness, Reversed: true},
			{ID: "A6", Prompt: "Warm, sympathetic", Trait: Agreeableness},
			{ID: "C1", Prompt: "Organized, reliable", Trait: Conscientiousness},
			{ID: "C6", Prompt: "Disorganized, careless", Trait: Conscientiousness, Reversed: true},
			{ID: "N1", Prompt: "Often anxious", Trait: Emotionality},
			{ID: "N6", Prompt: "Emotionally stable", Trait: Emotionality, Reversed: true},
			{ID: "O1", Prompt: "Open to new ideas", Trait: Openness},
			{ID: "O6", Prompt: "Conventional, prefers routine", Trait: Openness, Reversed: true},
		},
	}
}
