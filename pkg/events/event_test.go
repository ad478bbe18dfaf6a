package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRoundTripKeepsTypeAndTime(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	evt := BaseEvent{Type: TypeSessionCreated, Data: map[string]interface{}{"session_id": "s-1"}, OccurredAt: at}

	raw, err := Marshal(evt)
	require.NoError(t, err)

	got, err := Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeSessionCreated, got.EventType())
	assert.Equal(t, "s-1", got.Payload()["session_id"])
	assert.True(t, at.Equal(got.Timestamp()))
}

func TestUnmarshalRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{"},
		{name: "missing type", raw: `{"data":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}
