package store

import (
	"time"

	"db-chat-be/pkg/dbtool"
)

// Thread is the pipeline's memory for one conversation, keyed by the chat
// session id.
type Thread struct {
	ID        string `json:"id"`
	Turns     int    `json:"turns"`
	LastAgent string `json:"last_agent"`

	// Schemas holds introspection results per connection descriptor hash.
	Schemas map[string]*SchemaSnapshot `json:"schemas"`

	UpdatedAt time.Time `json:"updated_at"`
}

// SchemaSnapshot is a schema read at FetchedAt. Snapshots are immutable.
type SchemaSnapshot struct {
	Schema    *dbtool.DatabaseSchema `json:"schema"`
	FetchedAt time.Time              `json:"fetched_at"`
}

// Fresh reports whether the snapshot is younger than ttl at now. A
// non-positive ttl means snapshots are never reused.
func (s *SchemaSnapshot) Fresh(now time.Time, ttl time.Duration) bool {
	if s == nil || s.Schema == nil || ttl <= 0 {
		return false
	}
	return now.Sub(s.FetchedAt) < ttl
}

func NewThread(id string) *Thread {
	return &Thread{
		ID:      id,
		Schemas: make(map[string]*SchemaSnapshot),
	}
}

// Clone copies the thread so concurrent turns never share a map.
func (t *Thread) Clone() *Thread {
	c := *t
	c.Schemas = make(map[string]*SchemaSnapshot, len(t.Schemas))
	for k, v := range t.Schemas {
		c.Schemas[k] = v
	}
	return &c
}
