package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSendAudit(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "info", "json").WithComponent("send")

		log.SendAudit("proposta_trabalho", "ana@example.com", "sent", "msg-1", nil)

		entry := decodeLine(t, &buf)
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "send", entry["component"])
		assert.Equal(t, "email.send", entry["action"])
		assert.Equal(t, "proposta_trabalho", entry["template"])
		assert.Equal(t, "ana@example.com", entry["recipient"])
		assert.Equal(t, "sent", entry["outcome"])
		assert.Equal(t, "msg-1", entry["message_id"])
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "info", "json")

		log.SendAudit("envio_case", "ana@example.com", "failed", "", errors.New("boom"))

		entry := decodeLine(t, &buf)
		assert.Equal(t, "warn", entry["level"])
		assert.Equal(t, "boom", entry["error"])
		assert.NotContains(t, entry, "message_id")
	})
}

func TestNewWithWriter_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "json")
	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log = NewWithWriter(&buf, "not-a-level", "json")
	log.WithTemplate("envio_case").Info().Msg("shown")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "envio_case", entry["template"])
}
