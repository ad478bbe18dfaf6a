package conversation

import (
	"time"

	"db-chat-be/internal/constant"
	"db-chat-be/internal/entity"
	"db-chat-be/pkg/agent"

	"github.com/google/uuid"
)

// Split separates the pipeline output into the turn to persist (the echoed
// query onward) and the messages the pipeline produced itself.
func Split(input, output []agent.Message) (turn, produced []agent.Message) {
	if len(output) < len(input) || len(input) == 0 {
		return nil, nil
	}
	return output[len(input)-1:], output[len(input):]
}

// BuildBatch converts one turn into rows. Unclassifiable messages are
// dropped. The first and last rows are final markers and created_at grows
// by one microsecond per row, starting at base.
func BuildBatch(sessionID uuid.UUID, turn []agent.Message, base time.Time) []*entity.SessionChat {
	rows := make([]*entity.SessionChat, 0, len(turn))
	for _, m := range turn {
		role, ok := Classify(m)
		if !ok {
			continue
		}
		rows = append(rows, &entity.SessionChat{
			Id:        uuid.New(),
			SessionId: sessionID,
			Message:   Content(m),
			Role:      role,
		})
	}

	base = base.Truncate(time.Microsecond)
	for i, row := range rows {
		row.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
		row.UpdatedAt = row.CreatedAt
		row.IsFinalMessage = i == 0 || i == len(rows)-1
	}
	return rows
}

// NextBase returns a batch start strictly after the newest stored row, even
// when the clock is behind it.
func NextBase(now time.Time, newest *entity.SessionChat) time.Time {
	now = now.Truncate(time.Microsecond)
	if newest != nil && !now.After(newest.CreatedAt) {
		return newest.CreatedAt.Truncate(time.Microsecond).Add(time.Microsecond)
	}
	return now
}

// Reply is the text returned to the caller for a turn.
func Reply(produced []agent.Message) string {
	if len(produced) == 0 {
		return constant.NoResponseGenerated
	}
	if content := produced[len(produced)-1].Content; content != "" {
		return content
	}
	return constant.NoResponseGenerated
}
