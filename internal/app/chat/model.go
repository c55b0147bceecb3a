package chat

import (
	"time"

	"portfolio/internal/store"
)

type Message struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Message   string    `json:"message"`
	UDID      string    `json:"udid"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *Message) document() store.Document {
	return store.Document{
		"user":      m.User,
		"message":   m.Message,
		"udid":      m.UDID,
		"timestamp": m.Timestamp,
	}
}

func fromDocument(doc store.Document) *Message {
	return &Message{
		ID:        doc.ID(),
		User:      doc.String("user"),
		Message:   doc.String("message"),
		UDID:      doc.String("udid"),
		Timestamp: doc.Time("timestamp"),
	}
}

type CreateMessageRequest struct {
	User    string `json:"user" example:"Alice"`
	Message string `json:"message" example:"hello"`
	UDID    string `json:"udid,omitempty"`
}
