package fulfillment

import "context"

const (
	welcomeText = "Hi, I am your virtual assistant, Tell me how can I help you"

	locationsText = "We have presence in Karachi, Lahore, Islamabad, Faisalabad and Hyderabad.\n" +
		"Call 111-729-526 for the nearest center."

	appointmentInfoText = "You can book an appointment or consultation with the Saylani team:\n\n" +
		"1. Visit our official Calendly (if available) or call directly:\n" +
		"   UAN: 021-111-729-526\n" +
		"2. For IT Training related queries, register online:\n" +
		"   https://www.saylanimit.com/enroll\n" +
		"3. General meetings: Email us at saylanimass@gmail.com or call the UAN.\n\n" +
		"JazakAllah! We'll get back to you soon."
)

func (f *Fulfiller) welcome(_ context.Context, a *Agent) {
	addWithChips(a, welcomeText, "")
}

func (f *Fulfiller) info(_ context.Context, a *Agent) {
	a.AddPayload(richContent(
		map[string]any{
			"type":              "image",
			"rawUrl":            "https://i.pinimg.com/736x/9c/9a/ef/9c9aefcf49d7f51f9be204b650e7362e.jpg",
			"accessibilityText": "Saylani Logo",
		},
		map[string]any{
			"type":     "info",
			"title":    "Saylani Dastarkhwan",
			"subtitle": "Feeding 300,000+ daily",
		},
		map[string]any{
			"type": "description",
			"text": []string{
				"We provide fresh meals twice a day to thousands of people across 630+ centers in Pakistan.",
			},
		},
		chipsElement(IntentInfo),
	))
}

func (f *Fulfiller) locations(_ context.Context, a *Agent) {
	addWithChips(a, locationsText, IntentLocations)
}
