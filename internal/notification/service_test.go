package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	payload := []byte(`{
		"collection": "messages",
		"docId": "m42",
		"userId": "u1",
		"userLabel": "Mert",
		"text": "hallo zusammen",
		"recipients": ["u2", "u3"]
	}`)

	event, collection, err := parseEvent(payload)

	require.NoError(t, err)
	assert.Equal(t, "messages", collection)
	assert.Equal(t, "m42", event.ID)
	assert.Equal(t, "u1", event.SenderID)
	assert.Equal(t, "Mert", event.SenderLabel)
	assert.Equal(t, "hallo zusammen", event.Text)
	assert.Equal(t, []string{"u2", "u3"}, event.Recipients)
}

func TestParseEventOptionalFieldsMayBeAbsent(t *testing.T) {
	event, collection, err := parseEvent([]byte(`{"collection":"notes","docId":"n1"}`))

	require.NoError(t, err)
	assert.Equal(t, "notes", collection)
	assert.Equal(t, "n1", event.ID)
	assert.Empty(t, event.SenderID)
	assert.Empty(t, event.Recipients)
}

func TestParseEventRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"collection":`},
		{"missing collection", `{"docId":"m1"}`},
		{"missing doc id", `{"collection":"messages"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseEvent([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
