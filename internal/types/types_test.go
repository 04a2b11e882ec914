package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWebhookRequest(t *testing.T) {
	body := `{
		"responseId": "r-1",
		"session": "projects/saylani-bot/agent/sessions/7b1f5a2e-0c3d",
		"queryResult": {
			"queryText": "I want to give zakat",
			"action": "RotiBank_Donate",
			"parameters": {"donation_type": "Zakat", "person": {"name": "Ali"}},
			"intent": {"displayName": ""}
		}
	}`
	var req WebhookRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, "RotiBank_Donate", req.IntentName())
	assert.Equal(t, "7b1f5a2e-0c3d", req.SessionID())
	assert.Equal(t, "Zakat", req.QueryResult.Parameters["donation_type"])
	assert.IsType(t, map[string]any{}, req.QueryResult.Parameters["person"])
}

func TestIntentNamePrefersDisplayName(t *testing.T) {
	req := WebhookRequest{QueryResult: QueryResult{
		Action: "input.welcome",
		Intent: Intent{DisplayName: "Default Welcome Intent"},
	}}
	assert.Equal(t, "Default Welcome Intent", req.IntentName())
}

func TestSessionIDWithoutPath(t *testing.T) {
	req := WebhookRequest{Session: "abc"}
	assert.Equal(t, "abc", req.SessionID())
}
