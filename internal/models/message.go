package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageKind tells who produced a log entry.
type MessageKind string

const (
	KindUser   MessageKind = "user"
	KindSystem MessageKind = "system"
)

// Message is one entry of the chat log. It is never mutated after creation.
type Message struct {
	Timestamp time.Time   `json:"timestamp"`
	ID        string      `json:"id"`
	Kind      MessageKind `json:"kind"`
	Content   string      `json:"content"`
}

// NewMessage stamps a message with a fresh id and the current time.
func NewMessage(kind MessageKind, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Kind:      kind,
		Content:   content,
		Timestamp: time.Now(),
	}
}
