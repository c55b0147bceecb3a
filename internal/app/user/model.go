package user

import (
	"time"

	"portfolio/internal/store"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	UDID      string    `json:"udid"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) document() store.Document {
	doc := store.Document{
		"name":       u.Name,
		"udid":       u.UDID,
		"created_at": u.CreatedAt,
	}
	if u.ID != "" {
		doc[store.IDField] = u.ID
	}
	return doc
}

func fromDocument(doc store.Document) *User {
	return &User{
		ID:        doc.ID(),
		Name:      doc.String("name"),
		UDID:      doc.String("udid"),
		CreatedAt: doc.Time("created_at"),
	}
}

type RegisterRequest struct {
	Name string `json:"name" example:"Alice"`
}

type DeleteResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"User account deleted successfully"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
