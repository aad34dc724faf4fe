// Package recipe provides use cases for the recipe catalog: creation,
// forking, listing in both pagination modes, relevance search, and the
// edit-locked update/delete lifecycle.
package recipe

import "errors"

// Sentinel errors for recipe use case operations.
var (
	// ErrRecipeNotFound indicates that the requested recipe does not
	// exist, was soft-deleted, or is not visible to the requester.
	// Private recipes of other users intentionally collapse into this
	// error rather than a distinct "forbidden" response.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrParentNotFound indicates that the recipe named as the fork
	// parent does not exist or was deleted. Forking a deleted recipe is
	// rejected so lineage pointers never reference missing rows.
	ErrParentNotFound = errors.New("parent recipe not found")
)
