package fulfillment

import (
	"strings"

	"saylani-fulfillment/internal/tasks"
	"saylani-fulfillment/internal/types"
)

// Agent is the per-request state a handler writes into: reply messages and
// the side effects to run once the reply is out.
type Agent struct {
	Intent  string
	Query   string
	Session string
	Params  map[string]any

	messages []types.Message
	texts    []string
	tasks    []tasks.Task
}

func newAgent(req *types.WebhookRequest) *Agent {
	params := req.QueryResult.Parameters
	if params == nil {
		params = map[string]any{}
	}
	return &Agent{
		Intent:  req.IntentName(),
		Query:   strings.TrimSpace(req.QueryResult.QueryText),
		Session: req.SessionID(),
		Params:  params,
	}
}

// Add appends a text reply.
func (a *Agent) Add(text string) {
	a.texts = append(a.texts, text)
	a.messages = append(a.messages, types.Message{Text: &types.TextMessage{Text: []string{text}}})
}

// AddPayload appends a custom (rich content) payload.
func (a *Agent) AddPayload(payload map[string]any) {
	a.messages = append(a.messages, types.Message{Payload: payload})
}

// Defer queues a side effect.
func (a *Agent) Defer(t tasks.Task) {
	a.tasks = append(a.tasks, t)
}

func (a *Agent) response() *types.WebhookResponse {
	return &types.WebhookResponse{
		FulfillmentText:     strings.Join(a.texts, "\n"),
		FulfillmentMessages: a.messages,
	}
}
