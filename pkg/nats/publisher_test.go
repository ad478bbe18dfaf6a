package nats

import (
	"context"
	"os"
	"testing"
	"time"

	"db-chat-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.CHAT_TURN_COMPLETED", Subject(events.TypeChatTurnCompleted))
}

func TestPublisherAgainstServer(t *testing.T) {
	url := os.Getenv("TEST_NATS_URL")
	if url == "" {
		t.Skip("TEST_NATS_URL not set")
	}

	pub, err := NewPublisher(url)
	require.NoError(t, err)
	defer pub.Close()

	nc, err := nats.Connect(url)
	require.NoError(t, err)
	defer nc.Close()

	sub, err := nc.SubscribeSync(Subject(events.TypeUserCreated))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pub.Publish(ctx, events.New(events.TypeUserCreated, map[string]interface{}{"email": "a@b.io"})))

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, events.TypeUserCreated, msg.Header.Get("Event-Type"))
	assert.JSONEq(t, `{"email":"a@b.io"}`, string(msg.Data))
}
