package presence

import (
	"time"

	"portfolio/internal/store"
)

// ActiveUser is what the online list exposes.
type ActiveUser struct {
	UDID string `json:"udid"`
	Name string `json:"name"`
}

type record struct {
	ActiveUser
	ID         string
	LastActive time.Time
}

func fromDocument(doc store.Document) record {
	return record{
		ID: doc.ID(),
		ActiveUser: ActiveUser{UDID: doc.String("udid"), Name: doc.String("name")},
		LastActive: doc.Time("last_active"),
	}
}

type HeartbeatRequest struct {
	UDID string `json:"udid" example:"4f9c3c1e-8a53-4c09-9a55-0c4b2a1f7d11"`
	Name string `json:"name" example:"Alice"`
}

type StatusResponse struct {
	Status string `json:"status" example:"success"`
}
