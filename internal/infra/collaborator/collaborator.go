// Package collaborator holds the clients for the services this one
// cooperates with: the image pipeline, the notification service and the
// translation queue. All of them are side effects of an already
// committed core write, so failures here are logged and counted but
// never propagated back into the request that triggered them.
package collaborator

import (
	"context"
)

// EntityKind tags which aggregate an image set belongs to.
type EntityKind string

const (
	EntityRecipe    EntityKind = "recipe"
	EntityRecipeLog EntityKind = "recipe-log"
)

// ImagePipeline associates uploaded image references with an entity and
// flips them active so they stop being garbage-collection candidates.
type ImagePipeline interface {
	Associate(ctx context.Context, kind EntityKind, publicID string, imageRefs []string) error
}

// ForkEvent notifies the creator of a recipe that someone forked it.
type ForkEvent struct {
	RecipePublicID  string
	VariantPublicID string
	CreatorID       int64
	ForkerID        int64
}

// LogEvent notifies the creator of a recipe that someone cooked it.
type LogEvent struct {
	RecipePublicID string
	CreatorID      int64
	CookID         int64
}

// Notifier pushes activity notifications. Fire and forget.
type Notifier interface {
	NotifyFork(ctx context.Context, ev ForkEvent)
	NotifyLog(ctx context.Context, ev LogEvent)
}

// TranslationJob carries the text of a recipe to the translation queue.
type TranslationJob struct {
	RecipePublicID string
	SourceLocale   string
	Title          string
	Description    string
}

// TranslationQueue enqueues recipe text for asynchronous translation
// whenever a recipe is created or its text changes.
type TranslationQueue interface {
	Enqueue(ctx context.Context, job TranslationJob) error
}

// Set bundles the collaborator clients handed to the usecases.
type Set struct {
	Images       ImagePipeline
	Notifier     Notifier
	Translations TranslationQueue
}

// NewNoopSet returns a Set whose members do nothing, for tests and for
// deployments without the collaborating services.
func NewNoopSet() Set {
	return Set{
		Images:       NoopImagePipeline{},
		Notifier:     NoopNotifier{},
		Translations: NoopTranslationQueue{},
	}
}

type NoopImagePipeline struct{}

func (NoopImagePipeline) Associate(context.Context, EntityKind, string, []string) error {
	return nil
}

type NoopNotifier struct{}

func (NoopNotifier) NotifyFork(context.Context, ForkEvent) {}
func (NoopNotifier) NotifyLog(context.Context, LogEvent)   {}

type NoopTranslationQueue struct{}

func (NoopTranslationQueue) Enqueue(context.Context, TranslationJob) error { return nil }
