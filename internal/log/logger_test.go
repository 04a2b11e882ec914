package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponentTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Output: &buf, Level: "debug", Service: "test-svc"})

	l := WithComponent("dispatcher")
	l.Info().Str("intent", "RotiBank_Info").Msg("handled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-svc", entry["service"])
	assert.Equal(t, "dispatcher", entry["component"])
	assert.Equal(t, "RotiBank_Info", entry["intent"])
	assert.Equal(t, "handled", entry["message"])
}
