// Package recipe provides HTTP handlers for recipe-related endpoints.
// It includes handlers for creating (and forking), listing, searching,
// updating, and deleting recipes, plus the variants and family views.
package recipe

import (
	"time"

	"fork-kitchen/internal/domain/entity"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

// DTO represents the JSON structure for recipe data transfer.
type DTO struct {
	PublicID    string    `json:"public_id" example:"0c5b9f6e-2f61-4f3a-9f1c-0a9d7b1e2c3d"`
	CreatorID   int64     `json:"creator_id" example:"1"`
	Locale      string    `json:"locale" example:"ja"`
	Title       string    `json:"title" example:"基本のボロネーゼ"`
	Description string    `json:"description" example:"週末に仕込む定番ソース"`
	Visibility  string    `json:"visibility" example:"public"`
	IsVariant   bool      `json:"is_variant" example:"false"`
	ForkCount   int64     `json:"fork_count" example:"3"`
	LogCount    int64     `json:"log_count" example:"12"`
	SavedCount  int64     `json:"saved_count" example:"8"`
	ViewCount   int64     `json:"view_count" example:"230"`
	CreatedAt   time.Time `json:"created_at" example:"2026-03-01T12:00:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2026-03-01T12:00:00Z"`
}

// DetailDTO is the full recipe view including lineage context and content.
type DetailDTO struct {
	DTO
	ParentPublicID *string         `json:"parent_public_id,omitempty"`
	RootPublicID   *string         `json:"root_public_id,omitempty"`
	Ingredients    []IngredientDTO `json:"ingredients"`
	Steps          []StepDTO       `json:"steps"`
	Tags           []string        `json:"tags" example:"vegan,時短"`
	VariantCount   int64           `json:"variant_count" example:"3"`
}

// IngredientDTO represents one ingredient row.
type IngredientDTO struct {
	Name     string `json:"name" example:"牛ひき肉"`
	Quantity string `json:"quantity,omitempty" example:"300g"`
	Position int    `json:"position" example:"1"`
}

// StepDTO represents one preparation step.
type StepDTO struct {
	Position    int    `json:"position" example:"1"`
	Instruction string `json:"instruction" example:"玉ねぎをみじん切りにする"`
}

// SearchHitDTO is one search result with its relevance score.
type SearchHitDTO struct {
	DTO
	Relevance float64 `json:"relevance" example:"0.82"`
}

func toDTO(r *entity.Recipe) DTO {
	return DTO{
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
		ViewCount:   r.ViewCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDTOs(rs []*entity.Recipe) []DTO {
	out := make([]DTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, toDTO(r))
	}
	return out
}

func toDetailDTO(d *recipeUC.Detail) DetailDTO {
	out := DetailDTO{
		DTO:            toDTO(d.Recipe),
		ParentPublicID: d.ParentPublicID,
		RootPublicID:   d.RootPublicID,
		Ingredients:    make([]IngredientDTO, 0, len(d.Ingredients)),
		Steps:          make([]StepDTO, 0, len(d.Steps)),
		Tags:           d.Tags,
		VariantCount:   d.VariantCount,
	}
	for _, ing := range d.Ingredients {
		out.Ingredients = append(out.Ingredients, IngredientDTO{
			Name: ing.Name, Quantity: ing.Quantity, Position: ing.Position,
		})
	}
	for _, st := range d.Steps {
		out.Steps = append(out.Steps, StepDTO{
			Position: st.Position, Instruction: st.Instruction,
		})
	}
	return out
}

func toIngredients(in []IngredientDTO) []entity.Ingredient {
	if in == nil {
		return nil
	}
	out := make([]entity.Ingredient, 0, len(in))
	for i, ing := range in {
		pos := ing.Position
		if pos == 0 {
			pos = i + 1
		}
		out = append(out, entity.Ingredient{
			Name: ing.Name, Quantity: ing.Quantity, Position: pos,
		})
	}
	return out
}

func toSteps(in []StepDTO) []entity.Step {
	if in == nil {
		return nil
	}
	out := make([]entity.Step, 0, len(in))
	for i, st := range in {
		pos := st.Position
		if pos == 0 {
			pos = i + 1
		}
		out = append(out, entity.Step{Position: pos, Instruction: st.Instruction})
	}
	return out
}
