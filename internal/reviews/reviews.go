// Package reviews loads and submits per-item review threads.
package reviews

import (
	"context"
	"log/slog"
	"strings"

	"github.com/afariz/mediashelf/internal/domain"
)

// Loader fetches review threads and submits new reviews.
type Loader struct {
	repo   domain.ReviewRepository
	logger *slog.Logger
}

// NewLoader creates a review loader.
func NewLoader(repo domain.ReviewRepository, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{repo: repo, logger: logger}
}

// LoadFor returns the item's review thread, newest first. A fetch failure
// degrades to an empty thread; the detail view always renders something.
func (l *Loader) LoadFor(ctx context.Context, kind domain.Kind, itemID string) []domain.Review {
	thread, err := l.repo.ListReviews(ctx, kind, itemID)
	if err != nil {
		l.logger.Warn("review fetch failed, showing empty thread",
			"kind", kind.String(), "itemID", itemID, "error", err)
		return nil
	}
	return thread
}

// Submit validates and submits a review. Validation failures never reach
// the wire; remote rejections propagate for user display. On success the
// caller must re-invoke LoadFor for the authoritative, re-sorted thread —
// there is no optimistic local insert, which would drift against
// concurrent submissions by other users.
func (l *Loader) Submit(ctx context.Context, kind domain.Kind, itemID, author string, rating float64, text string) (domain.Review, error) {
	if err := validate(kind, author, rating, text); err != nil {
		return domain.Review{}, err
	}

	review, err := l.repo.InsertReview(ctx, kind, domain.Review{
		ItemID: itemID,
		Author: author,
		Rating: rating,
		Text:   text,
	})
	if err != nil {
		l.logger.Error("review submission failed",
			"kind", kind.String(), "itemID", itemID, "error", err)
		return domain.Review{}, err
	}

	l.logger.Info("submitted review", "kind", kind.String(), "itemID", itemID, "id", review.ID)
	return review, nil
}

func validate(kind domain.Kind, author string, rating float64, text string) error {
	if strings.TrimSpace(author) == "" {
		return &domain.ValidationError{Field: "author", Message: "name is required"}
	}
	if strings.TrimSpace(text) == "" {
		return &domain.ValidationError{Field: "text", Message: "review text is required"}
	}
	if bound := kind.RatingBound(); rating < 0 || rating > bound {
		return &domain.ValidationError{
			Field:   "rating",
			Message: ratingMessage(kind),
		}
	}
	return nil
}

func ratingMessage(kind domain.Kind) string {
	if kind == domain.KindBook {
		return "rating must be between 0 and 5"
	}
	return "rating must be between 0 and 10"
}
