// Package cookinglog provides HTTP handlers for cooking logs:
// recording that a user cooked a recipe and listing a recipe's logs.
package cookinglog

import (
	"time"

	"fork-kitchen/internal/domain/entity"
)

// DTO represents one cooking-log entry.
type DTO struct {
	ID        int64     `json:"id" example:"42"`
	UserID    int64     `json:"user_id" example:"7"`
	Note      string    `json:"note" example:"唐辛子を倍にしたら家族に好評だった"`
	CreatedAt time.Time `json:"created_at" example:"2026-03-01T19:30:00Z"`
}

func toDTO(l *entity.RecipeLog) DTO {
	return DTO{
		ID:        l.ID,
		UserID:    l.UserID,
		Note:      l.Note,
		CreatedAt: l.CreatedAt,
	}
}

func toDTOs(logs []*entity.RecipeLog) []DTO {
	dtos := make([]DTO, len(logs))
	for i, l := range logs {
		dtos[i] = toDTO(l)
	}
	return dtos
}
