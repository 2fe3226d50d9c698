package knowledge

// Corpus returns the fixed seed corpus of reference passages.
// This is the versioned document set loaded once at startup; it is
// deliberately small and curated.
func Corpus() []Document {
	return []Document{
		{
			ID: "fever_1",
			Text: "Fever is a temporary increase in body temperature, often due to an illness. " +
				"Normal body temperature is around 98.6°F (37°C). A fever is generally considered " +
				"when temperature is above 100.4°F (38°C). Common causes include viral infections, " +
				"bacterial infections, heat exhaustion, and certain inflammatory conditions.",
			Category: CategorySymptoms,
			Severity: SeverityLowMedium,
		},
		{
			ID: "chest_pain",
			Text: "Chest pain can have many causes. URGENT: Seek immediate medical attention if " +
				"chest pain is accompanied by shortness of breath, pain radiating to arm/jaw/back, " +
				"sweating, nausea, or feeling of pressure. These may indicate heart attack.",
			Category: CategorySymptoms,
			Severity: SeverityHigh,
		},
		{
			ID: "emergency_signs",
			Text: "Seek IMMEDIATE medical attention for: Chest pain/pressure, difficulty breathing, " +
				"severe bleeding, loss of consciousness, severe allergic reaction, stroke symptoms " +
				"(face drooping, arm weakness, speech difficulty), severe head injury, poisoning, " +
				"seizures lasting >5 minutes.",
			Category: CategoryEmergency,
			Severity: SeverityHigh,
		},
	}
}
