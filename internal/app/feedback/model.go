package feedback

import (
	"encoding/json"
	"time"

	"portfolio/internal/store"
)

type Feedback struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Rating    float64   `json:"rating"`
	UDID      string    `json:"udid,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Feedback) document() store.Document {
	doc := store.Document{
		"name":       f.Name,
		"email":      f.Email,
		"message":    f.Message,
		"rating":     f.Rating,
		"created_at": f.CreatedAt,
	}
	if f.UDID != "" {
		doc["udid"] = f.UDID
	}
	return doc
}

type SubmitRequest struct {
	Name    string `json:"name" binding:"required" example:"Alice"`
	Email   string `json:"email" binding:"required" example:"alice@example.com"`
	Message string `json:"message" binding:"required" example:"Nice site"`
	// Rating takes any JSON number, or a numeric string. Absent means 0.
	Rating json.Number `json:"rating,omitempty" swaggertype:"number" example:"5"`
	UDID   string      `json:"udid,omitempty"`
}

// RatingValue is the submitted rating, 0 when it was left out.
func (r SubmitRequest) RatingValue() float64 {
	if r.Rating == "" {
		return 0
	}
	v, err := r.Rating.Float64()
	if err != nil {
		return 0
	}
	return v
}

type StatusResponse struct {
	Status string `json:"status" example:"success"`
}
