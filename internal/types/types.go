package types

import "strings"

// WebhookRequest is the Dialogflow ES fulfillment request body.
type WebhookRequest struct {
	ResponseID  string      `json:"responseId"`
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText    string         `json:"queryText"`
	Action       string         `json:"action"`
	Parameters   map[string]any `json:"parameters"`
	Intent       Intent         `json:"intent"`
	LanguageCode string         `json:"languageCode,omitempty"`
}

type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// IntentName is the display name of the matched intent, or the action when
// the platform sent no intent block.
func (r *WebhookRequest) IntentName() string {
	if n := strings.TrimSpace(r.QueryResult.Intent.DisplayName); n != "" {
		return n
	}
	return strings.TrimSpace(r.QueryResult.Action)
}

// SessionID returns the trailing segment of the session path
// ("projects/<p>/agent/sessions/<id>").
func (r *WebhookRequest) SessionID() string {
	s := strings.TrimSpace(r.Session)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// WebhookResponse is the Dialogflow ES fulfillment response body.
type WebhookResponse struct {
	FulfillmentText     string    `json:"fulfillmentText,omitempty"`
	FulfillmentMessages []Message `json:"fulfillmentMessages,omitempty"`
}

// Message holds exactly one of Text or Payload.
type Message struct {
	Text    *TextMessage   `json:"text,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

type TextMessage struct {
	Text []string `json:"text"`
}

// Chip is a quick-reply suggestion.
type Chip struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
