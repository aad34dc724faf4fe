// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Recipe, SavedRecipe and RecipeLog,
// along with their validation rules and domain-specific errors.
package entity

import "time"

// Visibility controls who can see a recipe in listings.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Valid reports whether v is a known visibility value.
func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// Recipe represents a user-submitted recipe in the system.
//
// Recipes form fork families: a recipe created from scratch is a root
// (ParentID and RootID are both nil), and a recipe forked from another one
// carries two pointers set once at creation and never changed afterwards:
//
//   - ParentID: the recipe it was directly forked from
//   - RootID: the ultimate ancestor of the family
//
// RootID always points at a root recipe, never at an intermediate variant.
// A fork of a fork still points RootID directly at the original, so
// "all variants of family X" is a single indexed filter instead of a
// recursive walk.
type Recipe struct {
	ID          int64
	PublicID    string
	ParentID    *int64
	RootID      *int64
	CreatorID   int64
	Locale      string
	Title       string
	Description string
	Visibility  Visibility
	ForkCount   int64
	LogCount    int64
	SavedCount  int64
	ViewCount   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// IsRoot reports whether the recipe is an original (non-forked) recipe.
func (r *Recipe) IsRoot() bool {
	return r.ParentID == nil
}

// FamilyRootID returns the internal id of the recipe's fork family root.
// For a root recipe that is the recipe itself.
func (r *Recipe) FamilyRootID() int64 {
	if r.RootID != nil {
		return *r.RootID
	}
	return r.ID
}

// DeriveRootID computes the RootID for a new fork of parent, per the
// flattening rule: the new recipe points at the parent's root when the
// parent is itself a variant, and at the parent otherwise.
func DeriveRootID(parent *Recipe) int64 {
	if parent.RootID != nil {
		return *parent.RootID
	}
	return parent.ID
}

// Ingredient is a single ingredient line of a recipe.
type Ingredient struct {
	ID       int64
	RecipeID int64
	Name     string
	Quantity string
	Position int
}

// Step is a single instruction step of a recipe.
type Step struct {
	ID          int64
	RecipeID    int64
	Position    int
	Instruction string
}

// Translation holds the searchable text of a recipe in one locale.
// IngredientNames is the translated ingredient names joined into one
// text blob so relevance search can match against it without a join
// per ingredient.
type Translation struct {
	RecipeID        int64
	Locale          string
	Title           string
	Description     string
	IngredientNames string
}
