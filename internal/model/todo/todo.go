package todo

import (
	"time"

	"github.com/google/uuid"
)

// StatusPending is the status assigned to every newly created todo.
const StatusPending = "pending"

// Todo is a single todo record. UpdatedAt stays nil until the first
// successful update, so the field is absent from JSON before then.
type Todo struct {
	ID        string     `json:"id"`
	Text      string     `json:"todo"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Touch records a successful update.
func (t *Todo) Touch() {
	now := time.Now().UTC()
	t.UpdatedAt = &now
}

// New builds a pending todo with a generated id. The caller is expected
// to have trimmed and validated text already.
func New(text string) Todo {
	return Todo{
		ID:        uuid.NewString(),
		Text:      text,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
