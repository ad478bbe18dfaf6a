package agent

import (
	"context"
	"errors"

	"db-chat-be/pkg/store"
)

var (
	ErrMaxTurns       = errors.New("agent exceeded its turn limit")
	ErrMaxHandoffs    = errors.New("supervisor exceeded its hand-off limit")
	ErrUnknownAgent   = errors.New("unknown agent")
	ErrThreadNotFound = errors.New("no thread in context")
)

// Pipeline answers a conversation. The returned slice starts with the input
// messages followed by everything the pipeline produced.
type Pipeline interface {
	Invoke(ctx context.Context, messages []Message, threadID string) ([]Message, error)
}

// ThreadStore persists per-thread memory between invocations.
type ThreadStore interface {
	Load(ctx context.Context, threadID string) (*store.Thread, error)
	Save(ctx context.Context, thread *store.Thread) error
	Delete(ctx context.Context, threadID string) error
}

type threadKey struct{}

func WithThread(ctx context.Context, thread *store.Thread) context.Context {
	return context.WithValue(ctx, threadKey{}, thread)
}

func ThreadFromContext(ctx context.Context) (*store.Thread, error) {
	thread, ok := ctx.Value(threadKey{}).(*store.Thread)
	if !ok || thread == nil {
		return nil, ErrThreadNotFound
	}
	return thread, nil
}
