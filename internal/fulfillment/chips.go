package fulfillment

import "saylani-fulfillment/internal/types"

type chipOption struct {
	text   string
	intent string
}

var chipOptions = []chipOption{
	{text: "ℹ️ About Our Services", intent: IntentInfo},
	{text: "📍 Find Centers", intent: IntentLocations},
	{text: "💰 Make a Donation", intent: IntentDonate},
	{text: "🎓 IT Course Registration", intent: IntentRegistration},
	{text: "📅 Book Appointment", intent: IntentAppointment},
}

// chips lists the service suggestions, minus the intent being answered.
func chips(exclude string) []types.Chip {
	out := make([]types.Chip, 0, len(chipOptions))
	for _, o := range chipOptions {
		if o.intent == exclude {
			continue
		}
		out = append(out, types.Chip{Text: o.text})
	}
	return out
}

func chipsElement(exclude string) map[string]any {
	return map[string]any{"type": "chips", "options": chips(exclude)}
}

func richContent(elements ...map[string]any) map[string]any {
	row := make([]any, 0, len(elements))
	for _, e := range elements {
		row = append(row, e)
	}
	return map[string]any{"richContent": []any{row}}
}

// addWithChips replies with text followed by the suggestion chips.
func addWithChips(a *Agent, text, exclude string) {
	a.Add(text)
	a.AddPayload(richContent(chipsElement(exclude)))
}
