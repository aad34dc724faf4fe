package entity

import "time"

// SavedRecipe records that a user saved a recipe to their library.
// Listings of saved recipes follow the same cursor contract as recipe
// listings, ordered by the save's own CreatedAt and tie-broken by its ID.
type SavedRecipe struct {
	ID        int64
	UserID    int64
	RecipeID  int64
	CreatedAt time.Time
}

// RecipeLog is a "cooked it" journal entry against a recipe.
// Once a recipe has logs its content is part of other users' history,
// which is why logs participate in the edit-lock precondition.
type RecipeLog struct {
	ID        int64
	RecipeID  int64
	UserID    int64
	Note      string
	CreatedAt time.Time
}
