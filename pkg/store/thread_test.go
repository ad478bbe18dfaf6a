package store

import (
	"testing"
	"time"

	"db-chat-be/pkg/dbtool"

	"github.com/stretchr/testify/assert"
)

func TestThreadCloneDetachesSchemas(t *testing.T) {
	th := NewThread("s1")
	th.Turns = 2
	th.Schemas["a"] = &SchemaSnapshot{Schema: &dbtool.DatabaseSchema{SchemaName: "public"}}

	c := th.Clone()
	c.Schemas["b"] = &SchemaSnapshot{}
	c.Turns++

	assert.Len(t, th.Schemas, 1)
	assert.Equal(t, 2, th.Turns)
	assert.Same(t, th.Schemas["a"], c.Schemas["a"])
}

func TestSchemaSnapshotFresh(t *testing.T) {
	fetched := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := &SchemaSnapshot{Schema: &dbtool.DatabaseSchema{}, FetchedAt: fetched}

	tests := []struct {
		name string
		snap *SchemaSnapshot
		now  time.Time
		ttl  time.Duration
		want bool
	}{
		{name: "within ttl", snap: snap, now: fetched.Add(30 * time.Second), ttl: time.Minute, want: true},
		{name: "expired", snap: snap, now: fetched.Add(time.Minute), ttl: time.Minute},
		{name: "caching disabled", snap: snap, now: fetched, ttl: 0},
		{name: "nil snapshot", now: fetched, ttl: time.Minute},
		{name: "empty snapshot", snap: &SchemaSnapshot{FetchedAt: fetched}, now: fetched, ttl: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.Fresh(tt.now, tt.ttl))
		})
	}
}
