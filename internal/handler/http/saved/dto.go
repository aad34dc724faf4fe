// Package saved provides HTTP handlers for the user's saved-recipes
// library: saving, unsaving, and listing saved recipes.
package saved

import (
	"time"

	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/repository"
)

// RecipeDTO is the recipe summary embedded in a library row.
type RecipeDTO struct {
	PublicID    string `json:"public_id" example:"0c5b9f6e-2f61-4f3a-9f1c-0a9d7b1e2c3d"`
	CreatorID   int64  `json:"creator_id" example:"1"`
	Locale      string `json:"locale" example:"ja"`
	Title       string `json:"title" example:"基本のボロネーゼ"`
	Description string `json:"description" example:"週末に仕込む定番ソース"`
	Visibility  string `json:"visibility" example:"public"`
	IsVariant   bool   `json:"is_variant" example:"false"`
	ForkCount   int64  `json:"fork_count" example:"3"`
	LogCount    int64  `json:"log_count" example:"12"`
	SavedCount  int64  `json:"saved_count" example:"8"`
	Deleted     bool   `json:"deleted" example:"false"`
}

// DTO represents one saved-recipe row in the user's library. The
// recipe summary stays present even for recipes deleted after being
// saved, flagged via the deleted field.
type DTO struct {
	SavedAt time.Time `json:"saved_at" example:"2026-03-01T12:00:00Z"`
	Recipe  RecipeDTO `json:"recipe"`
}

func toDTO(row repository.SavedWithRecipe) DTO {
	return DTO{
		SavedAt: row.Saved.CreatedAt,
		Recipe:  toRecipeDTO(row.Recipe),
	}
}

func toDTOs(rows []repository.SavedWithRecipe) []DTO {
	dtos := make([]DTO, len(rows))
	for i, row := range rows {
		dtos[i] = toDTO(row)
	}
	return dtos
}

func toRecipeDTO(r *entity.Recipe) RecipeDTO {
	return RecipeDTO{
		PublicID:    r.PublicID,
		CreatorID:   r.CreatorID,
		Locale:      r.Locale,
		Title:       r.Title,
		Description: r.Description,
		Visibility:  string(r.Visibility),
		IsVariant:   !r.IsRoot(),
		ForkCount:   r.ForkCount,
		LogCount:    r.LogCount,
		SavedCount:  r.SavedCount,
		Deleted:     r.DeletedAt != nil,
	}
}
