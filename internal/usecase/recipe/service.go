package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/infra/collaborator"
	"fork-kitchen/internal/pkg/search"
	"fork-kitchen/internal/repository"
)

// CreateInput represents the input parameters for creating a recipe.
// A non-empty ParentPublicID makes the new recipe a fork of that
// recipe; Locale may then be left empty to inherit the parent's.
type CreateInput struct {
	CreatorID      int64
	ParentPublicID string
	Locale         string
	Title          string
	Description    string
	Visibility     entity.Visibility
	Ingredients    []entity.Ingredient
	Steps          []entity.Step
	Tags           []string
	ImageRefs      []string
}

// UpdateInput represents the input parameters for updating a recipe.
// Nil pointer fields are left unchanged. Nil Ingredients/Steps/Tags
// slices leave that content untouched; empty non-nil slices clear it.
type UpdateInput struct {
	PublicID    string
	ActorID     int64
	Title       *string
	Description *string
	Locale      *string
	Visibility  *entity.Visibility
	Ingredients []entity.Ingredient
	Steps       []entity.Step
	Tags        []string
}

// Detail is the full read model of one recipe, including its lineage
// context and content.
type Detail struct {
	Recipe         *entity.Recipe
	ParentPublicID *string
	RootPublicID   *string
	Ingredients    []entity.Ingredient
	Steps          []entity.Step
	Tags           []string
	VariantCount   int64
}

// ListQuery describes one listing request.
type ListQuery struct {
	Params  pagination.Params
	Filters repository.ListFilters
	Ranking repository.Ranking
}

// ListResult pairs a page of recipes with its pagination metadata.
type ListResult struct {
	Recipes    []*entity.Recipe
	Pagination pagination.Metadata
}

// SearchQuery describes one relevance-search request.
type SearchQuery struct {
	Keyword string
	Locale  *string
	Params  pagination.Params
}

// SearchResult pairs search hits with pagination metadata.
type SearchResult struct {
	Hits       []repository.SearchHit
	Pagination pagination.Metadata
}

// Service provides recipe management use cases. Collaborator calls are
// made after the core write commits and never fail the operation.
type Service struct {
	Recipes repository.RecipeRepository
	Logs    repository.RecipeLogRepository
	Collab  collaborator.Set
	PageCfg pagination.Config

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Create creates a root recipe or a fork and returns the stored entity.
// Forking a missing or deleted parent returns ErrParentNotFound.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.Recipe, error) {
	var parent *entity.Recipe
	if input.ParentPublicID != "" {
		p, err := s.Recipes.GetByPublicID(ctx, input.ParentPublicID)
		if err != nil {
			return nil, fmt.Errorf("get parent: %w", err)
		}
		if p == nil || p.DeletedAt != nil {
			return nil, ErrParentNotFound
		}
		parent = p
	}

	locale := input.Locale
	if locale == "" && parent != nil {
		locale = parent.Locale
	}
	visibility := input.Visibility
	if visibility == "" {
		visibility = entity.VisibilityPrivate
	}

	if err := validateRecipeInput(locale, input.Title, input.Description, visibility); err != nil {
		return nil, err
	}

	tags := entity.NormalizeTags(input.Tags)
	if tags == nil && parent != nil {
		// A fork inherits the parent's hashtags unless it brings its own.
		inherited, err := s.Recipes.ListTags(ctx, parent.ID)
		if err != nil {
			return nil, fmt.Errorf("list parent tags: %w", err)
		}
		tags = inherited
	}
	if err := entity.ValidateTags(tags); err != nil {
		return nil, err
	}

	now := s.now()
	recipe := &entity.Recipe{
		PublicID:    uuid.NewString(),
		CreatorID:   input.CreatorID,
		Locale:      locale,
		Title:       input.Title,
		Description: input.Description,
		Visibility:  visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if parent != nil {
		parentID := parent.ID
		rootID := entity.DeriveRootID(parent)
		recipe.ParentID = &parentID
		recipe.RootID = &rootID
	}

	if err := s.Recipes.Create(ctx, recipe, input.Ingredients, input.Steps, tags); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.afterWrite(ctx, recipe, input.ImageRefs)
	if parent != nil {
		s.Collab.Notifier.NotifyFork(ctx, collaborator.ForkEvent{
			RecipePublicID:  parent.PublicID,
			VariantPublicID: recipe.PublicID,
			CreatorID:       parent.CreatorID,
			ForkerID:        input.CreatorID,
		})
	}
	return recipe, nil
}

// afterWrite runs the collaborator side effects of a committed create
// or update. Failures are logged, never returned.
func (s *Service) afterWrite(ctx context.Context, recipe *entity.Recipe, imageRefs []string) {
	if err := s.Collab.Images.Associate(ctx, collaborator.EntityRecipe, recipe.PublicID, imageRefs); err != nil {
		slog.Warn("image association failed",
			slog.String("recipe", recipe.PublicID),
			slog.Any("error", err))
	}
	if err := s.Collab.Translations.Enqueue(ctx, collaborator.TranslationJob{
		RecipePublicID: recipe.PublicID,
		SourceLocale:   recipe.Locale,
		Title:          recipe.Title,
		Description:    recipe.Description,
	}); err != nil {
		slog.Warn("translation enqueue failed",
			slog.String("recipe", recipe.PublicID),
			slog.Any("error", err))
	}
}

// Get returns the detail view of one recipe. Private recipes are only
// visible to their creator; everyone else gets ErrRecipeNotFound.
// Reads by non-creators bump the view counter.
func (s *Service) Get(ctx context.Context, publicID string, viewerID *int64) (*Detail, error) {
	r, err := s.visible(ctx, publicID, viewerID)
	if err != nil {
		return nil, err
	}

	if viewerID == nil || *viewerID != r.CreatorID {
		if err := s.Recipes.AddView(ctx, r.ID); err != nil {
			slog.Warn("view count bump failed",
				slog.String("recipe", r.PublicID),
				slog.Any("error", err))
		}
	}

	ingredients, err := s.Recipes.ListIngredients(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	steps, err := s.Recipes.ListSteps(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	tags, err := s.Recipes.ListTags(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	variantCount, err := s.Recipes.CountByParent(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("count variants: %w", err)
	}

	detail := &Detail{
		Recipe:       r,
		Ingredients:  ingredients,
		Steps:        steps,
		Tags:         tags,
		VariantCount: variantCount,
	}
	if r.ParentID != nil {
		if pub, err := s.publicIDOf(ctx, *r.ParentID); err == nil {
			detail.ParentPublicID = pub
		}
	}
	if r.RootID != nil {
		if pub, err := s.publicIDOf(ctx, *r.RootID); err == nil {
			detail.RootPublicID = pub
		}
	}
	return detail, nil
}

// publicIDOf resolves an internal id to a public id. Soft-deleted
// ancestors still resolve: the pointer is part of the lineage record.
func (s *Service) publicIDOf(ctx context.Context, id int64) (*string, error) {
	r, err := s.Recipes.GetByID(ctx, id)
	if err != nil || r == nil {
		return nil, err
	}
	return &r.PublicID, nil
}

// visible loads a recipe by public id and applies the visibility rule.
func (s *Service) visible(ctx context.Context, publicID string, viewerID *int64) (*entity.Recipe, error) {
	r, err := s.Recipes.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if r == nil || r.DeletedAt != nil {
		return nil, ErrRecipeNotFound
	}
	if r.Visibility == entity.VisibilityPrivate &&
		(viewerID == nil || *viewerID != r.CreatorID) {
		return nil, ErrRecipeNotFound
	}
	return r, nil
}

// Update applies an edit-locked update. The edit lock rejects the
// mutation with a PreconditionError naming the failed condition:
// not-owner, has-variants, or has-logs.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*entity.Recipe, error) {
	r, err := s.editable(ctx, input.PublicID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		r.Title = *input.Title
	}
	if input.Description != nil {
		r.Description = *input.Description
	}
	if input.Locale != nil {
		r.Locale = *input.Locale
	}
	if input.Visibility != nil {
		r.Visibility = *input.Visibility
	}
	if err := validateRecipeInput(r.Locale, r.Title, r.Description, r.Visibility); err != nil {
		return nil, err
	}
	tags := entity.NormalizeTags(input.Tags)
	if err := entity.ValidateTags(tags); err != nil {
		return nil, err
	}
	r.UpdatedAt = s.now()

	if err := s.Recipes.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	if input.Ingredients != nil || input.Steps != nil {
		// ReplaceContent rewrites both tables, so a one-sided update
		// carries the stored rows of the untouched side.
		ingredients, steps := input.Ingredients, input.Steps
		if ingredients == nil {
			if ingredients, err = s.Recipes.ListIngredients(ctx, r.ID); err != nil {
				return nil, fmt.Errorf("list ingredients: %w", err)
			}
		}
		if steps == nil {
			if steps, err = s.Recipes.ListSteps(ctx, r.ID); err != nil {
				return nil, fmt.Errorf("list steps: %w", err)
			}
		}
		if err := s.Recipes.ReplaceContent(ctx, r.ID, ingredients, steps); err != nil {
			return nil, fmt.Errorf("replace content: %w", err)
		}
	}
	if tags != nil {
		if err := s.Recipes.ReplaceTags(ctx, r.ID, tags); err != nil {
			return nil, fmt.Errorf("replace tags: %w", err)
		}
	}

	s.afterWrite(ctx, r, nil)
	return r, nil
}

// Delete soft-deletes a recipe under the same edit lock as Update.
func (s *Service) Delete(ctx context.Context, publicID string, actorID int64) error {
	r, err := s.editable(ctx, publicID, actorID)
	if err != nil {
		return err
	}
	if err := s.Recipes.SoftDelete(ctx, r.ID, r.ParentID, s.now()); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// editable loads a recipe and checks the edit-lock conditions in a
// fixed order: ownership, then variants, then logs. The first failed
// condition is the one reported.
func (s *Service) editable(ctx context.Context, publicID string, actorID int64) (*entity.Recipe, error) {
	r, err := s.Recipes.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if r == nil || r.DeletedAt != nil {
		return nil, ErrRecipeNotFound
	}
	if r.CreatorID != actorID {
		return nil, &entity.PreconditionError{Reason: entity.ReasonNotOwner}
	}

	variants, err := s.Recipes.CountByParent(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("count variants: %w", err)
	}
	if variants > 0 {
		return nil, &entity.PreconditionError{Reason: entity.ReasonHasVariants}
	}

	logs, err := s.Logs.CountByRecipe(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("count logs: %w", err)
	}
	if logs > 0 {
		return nil, &entity.PreconditionError{Reason: entity.ReasonHasLogs}
	}
	return r, nil
}

// List serves the recipe listing in either pagination mode. In cursor
// mode the ranking parameter is ignored and recency ordering applies;
// in offset mode any ranking strategy is honored and totals are
// computed alongside the page.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	params := q.Params.WithDefaults(s.PageCfg)
	if err := params.Validate(s.PageCfg); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}
	strategy := pagination.StrategyFor(params.Mode)
	qp := strategy.CalculateQuery(params)

	if params.Mode == pagination.ModeCursor {
		// One extra row decides hasNext without a COUNT round trip.
		rows, err := s.Recipes.ListCursor(ctx, q.Filters, qp.Cursor, qp.Limit+1)
		if err != nil {
			return nil, fmt.Errorf("list recipes: %w", err)
		}
		rows, hasMore, next := trimPage(rows, qp.Limit)
		return &ListResult{
			Recipes:    rows,
			Pagination: strategy.BuildMetadata(params, 0, hasMore, next),
		}, nil
	}

	var (
		total int64
		rows  []*entity.Recipe
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.Recipes.Count(gctx, q.Filters)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.Recipes.ListPage(gctx, q.Filters, q.Ranking, qp.Offset, qp.Limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return &ListResult{
		Recipes:    rows,
		Pagination: strategy.BuildMetadata(params, total, false, nil),
	}, nil
}

// trimPage cuts the limit+1 overfetch back to the page and derives the
// next-cursor position from the last visible row.
func trimPage(rows []*entity.Recipe, limit int) ([]*entity.Recipe, bool, *pagination.Cursor) {
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	var next *pagination.Cursor
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		next = &pagination.Cursor{Time: last.CreatedAt, ID: last.ID}
	}
	return rows, hasMore, next
}

// Variants lists the direct forks of a recipe under the cursor
// contract. The parent must be visible to the viewer.
func (s *Service) Variants(ctx context.Context, parentPublicID string, viewerID *int64, params pagination.Params) (*ListResult, error) {
	parent, err := s.visible(ctx, parentPublicID, viewerID)
	if err != nil {
		return nil, err
	}

	params.Mode = pagination.ModeCursor
	params = params.WithDefaults(s.PageCfg)
	if err := params.Validate(s.PageCfg); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}
	strategy := pagination.StrategyFor(params.Mode)
	qp := strategy.CalculateQuery(params)

	rows, err := s.Recipes.ListVariantsCursor(ctx, parent.ID, qp.Cursor, qp.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	rows, hasMore, next := trimPage(rows, qp.Limit)
	return &ListResult{
		Recipes:    rows,
		Pagination: strategy.BuildMetadata(params, 0, hasMore, next),
	}, nil
}

// Family returns every live member of a recipe's fork family, oldest
// first, resolved through the flattened root pointer in one query.
func (s *Service) Family(ctx context.Context, publicID string, viewerID *int64) ([]*entity.Recipe, error) {
	r, err := s.visible(ctx, publicID, viewerID)
	if err != nil {
		return nil, err
	}
	members, err := s.Recipes.FindByRoot(ctx, r.FamilyRootID())
	if err != nil {
		return nil, fmt.Errorf("find family: %w", err)
	}
	return members, nil
}

// Search runs the relevance search. Keywords shorter than the minimum
// yield an empty result, not an error. Search paginates by offset only;
// a request arriving in cursor mode is served as page one.
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	params := q.Params
	if params.Mode != pagination.ModeOffset {
		params.Mode = pagination.ModeOffset
		params.Page = 1
		params.Cursor = nil
	}
	params = params.WithDefaults(s.PageCfg)
	if err := params.Validate(s.PageCfg); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}
	strategy := pagination.StrategyFor(params.Mode)

	keyword := search.Normalize(q.Keyword)
	if !search.Usable(keyword) {
		return &SearchResult{
			Hits:       []repository.SearchHit{},
			Pagination: strategy.BuildMetadata(params, 0, false, nil),
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, search.DefaultSearchTimeout)
	defer cancel()

	qp := strategy.CalculateQuery(params)
	var (
		total int64
		hits  []repository.SearchHit
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.Recipes.CountSearch(gctx, keyword, q.Locale)
		return err
	})
	g.Go(func() error {
		var err error
		hits, err = s.Recipes.Search(gctx, keyword, q.Locale, qp.Offset, qp.Limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return &SearchResult{
		Hits:       hits,
		Pagination: strategy.BuildMetadata(params, total, false, nil),
	}, nil
}

// PurgeDeleted hard-deletes recipes that were soft-deleted before the
// retention window. Called from the maintenance worker only.
func (s *Service) PurgeDeleted(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention)
	n, err := s.Recipes.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge recipes: %w", err)
	}
	return n, nil
}

func validateRecipeInput(locale, title, description string, visibility entity.Visibility) error {
	if err := entity.ValidateLocale(locale); err != nil {
		return err
	}
	if err := entity.ValidateTitle(title); err != nil {
		return err
	}
	if err := entity.ValidateDescription(description); err != nil {
		return err
	}
	if !visibility.Valid() {
		return &entity.ValidationError{Field: "visibility", Message: "must be private or public"}
	}
	return nil
}
