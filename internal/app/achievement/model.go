package achievement

import (
	"time"

	"portfolio/internal/store"
)

type Achievement struct {
	ID            string    `json:"_id"`
	UserUDID      string    `json:"user_udid"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

func (a *Achievement) document() store.Document {
	return store.Document{
		"user_udid":      a.UserUDID,
		"achievement_id": a.AchievementID,
		"unlocked_at":    a.UnlockedAt,
	}
}

func fromDocument(doc store.Document) *Achievement {
	return &Achievement{
		ID:            doc.ID(),
		UserUDID:      doc.String("user_udid"),
		AchievementID: doc.String("achievement_id"),
		UnlockedAt:    doc.Time("unlocked_at"),
	}
}

type UnlockRequest struct {
	AchievementID string `json:"achievement_id" example:"explorer"`
}
