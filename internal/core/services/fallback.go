package services

import "strings"

// keywordResponse pairs a query keyword with a canned medical answer.
// Entries are matched in order; the first keyword found in the query wins.
type keywordResponse struct {
	keyword  string
	response string
}

// fallbackResponses is the static medical knowledge base used when the
// grounded answer path is unavailable. Keyword order is significant.
var fallbackResponses = []keywordResponse{
	{"headache", "Headaches can be caused by various factors including stress, dehydration, lack of sleep, or underlying medical conditions. For mild headaches, try rest, hydration, and over-the-counter pain relievers. If headaches are severe or frequent, consult a healthcare provider."},
	{"fever", "Fever is often a sign of infection. For adults, a fever above 103°F (39.4°C) requires medical attention. Stay hydrated, rest, and monitor your temperature. Contact a doctor if fever persists or is accompanied by other symptoms."},
	{"cough", "Coughing can be caused by colds, allergies, or respiratory infections. Stay hydrated, use honey for soothing, and consider over-the-counter cough suppressants. See a doctor if cough persists for more than 2 weeks."},
	{"diabetes", "Diabetes is a chronic condition affecting blood sugar regulation. Type 1 diabetes requires insulin therapy, while Type 2 can often be managed with diet, exercise, and medication. Regular monitoring and medical supervision are essential."},
	{"blood pressure", "Blood pressure should be below 120/80 mmHg for most adults. High blood pressure can lead to heart disease and stroke. Lifestyle changes like diet, exercise, and stress management can help. Regular monitoring is important."},
	{"exercise", "Regular exercise is crucial for health. Aim for 150 minutes of moderate activity weekly. Include both cardio and strength training. Start slowly and gradually increase intensity. Consult a doctor before starting a new exercise program."},
	{"nutrition", "A balanced diet should include fruits, vegetables, whole grains, lean proteins, and healthy fats. Limit processed foods, added sugars, and excessive salt. Stay hydrated with water throughout the day."},
	{"sleep", "Adults need 7-9 hours of sleep per night. Poor sleep can affect mood, memory, and health. Maintain a regular sleep schedule, create a restful environment, and avoid screens before bedtime."},
	{"stress", "Chronic stress can impact physical and mental health. Practice stress management techniques like meditation, deep breathing, exercise, and time management. Consider professional help if stress becomes overwhelming."},
	{"vaccination", "Vaccines protect against serious diseases. Follow recommended vaccination schedules for children and adults. Annual flu shots are recommended for most people. Consult your healthcare provider about specific vaccines."},
}

// categoryResponse maps a set of trigger words to a broader canned
// answer. Categories are checked after the keyword table, in order.
type categoryResponse struct {
	triggers []string
	response string
}

var fallbackCategories = []categoryResponse{
	{
		triggers: []string{"symptom", "pain", "hurt", "ache"},
		response: "I understand you're experiencing symptoms. While I can provide general information, it's important to consult with a healthcare provider for proper diagnosis and treatment. If symptoms are severe or persistent, seek medical attention immediately.",
	},
	{
		triggers: []string{"treatment", "cure", "medicine", "medication"},
		response: "Treatment recommendations depend on the specific condition and individual factors. Always consult with a healthcare provider before starting any treatment or medication. Self-diagnosis and self-treatment can be dangerous.",
	},
	{
		triggers: []string{"prevention", "prevent", "avoid"},
		response: "Preventive healthcare includes regular check-ups, vaccinations, healthy lifestyle choices, and early detection of health issues. Maintain a balanced diet, exercise regularly, get adequate sleep, and avoid harmful habits like smoking.",
	},
}

// genericFallback is returned when no keyword or category matches.
const genericFallback = "Thank you for your medical question. While I can provide general health information, I cannot replace professional medical advice. For specific health concerns, diagnosis, or treatment, please consult with a qualified healthcare provider. If you're experiencing a medical emergency, call emergency services immediately."

// FallbackResponse answers a query from the static knowledge base.
// Matching is case-insensitive substring search, keywords first, then
// categories, then the generic disclaimer. Never fails, never returns
// an empty string.
func FallbackResponse(query string) string {
	lower := strings.ToLower(query)

	for _, entry := range fallbackResponses {
		if strings.Contains(lower, entry.keyword) {
			return entry.response
		}
	}

	for _, category := range fallbackCategories {
		for _, trigger := range category.triggers {
			if strings.Contains(lower, trigger) {
				return category.response
			}
		}
	}

	return genericFallback
}
