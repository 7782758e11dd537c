package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/afariz/mediashelf/internal/domain"
)

// Commands is the admin mutation surface. Mutations never touch the
// snapshots directly: after a successful mutation the caller refreshes, so
// the UI reflects committed remote state rather than an optimistic local
// edit.
type Commands struct {
	repo   domain.CatalogRepository
	logger *slog.Logger
}

// NewCommands creates the admin mutation surface.
func NewCommands(repo domain.CatalogRepository, logger *slog.Logger) *Commands {
	if logger == nil {
		logger = slog.Default()
	}
	return &Commands{repo: repo, logger: logger}
}

// CreateItem validates the payload and inserts a new item.
func (c *Commands) CreateItem(ctx context.Context, kind domain.Kind, fields domain.ItemFields) (domain.Item, error) {
	if err := validateFields(kind, fields); err != nil {
		return domain.Item{}, err
	}
	item, err := c.repo.InsertItem(ctx, kind, fields)
	if err != nil {
		c.logger.Error("insert failed", "kind", kind.String(), "title", fields.Title, "error", err)
		return domain.Item{}, err
	}
	c.logger.Info("created item", "kind", kind.String(), "id", item.ID, "title", item.Title)
	return item, nil
}

// UpdateItem validates the payload and replaces an item's fields.
func (c *Commands) UpdateItem(ctx context.Context, kind domain.Kind, id string, fields domain.ItemFields) (domain.Item, error) {
	if err := validateFields(kind, fields); err != nil {
		return domain.Item{}, err
	}
	item, err := c.repo.UpdateItem(ctx, kind, id, fields)
	if err != nil {
		c.logger.Error("update failed", "kind", kind.String(), "id", id, "error", err)
		return domain.Item{}, err
	}
	c.logger.Info("updated item", "kind", kind.String(), "id", id)
	return item, nil
}

// DeleteItem removes an item from the remote collection.
func (c *Commands) DeleteItem(ctx context.Context, kind domain.Kind, id string) error {
	if err := c.repo.DeleteItem(ctx, kind, id); err != nil {
		c.logger.Error("delete failed", "kind", kind.String(), "id", id, "error", err)
		return err
	}
	c.logger.Info("deleted item", "kind", kind.String(), "id", id)
	return nil
}

// validateFields rejects malformed payloads before they reach the wire.
// The remote store remains the source of truth for acceptance.
func validateFields(kind domain.Kind, fields domain.ItemFields) error {
	if fields.Title == "" {
		return &domain.ValidationError{Field: "title", Message: "title is required"}
	}
	if bound := kind.RatingBound(); fields.Rating < 0 || fields.Rating > bound {
		return &domain.ValidationError{Field: "rating", Message: ratingBoundMessage(kind)}
	}
	if fields.ReleaseYear != 0 {
		if fields.ReleaseYear < 1000 || fields.ReleaseYear > time.Now().Year()+1 {
			return &domain.ValidationError{Field: "release_year", Message: "implausible year"}
		}
	}
	if fields.DurationMin < 0 {
		return &domain.ValidationError{Field: "duration", Message: "duration cannot be negative"}
	}
	if fields.Pages < 0 {
		return &domain.ValidationError{Field: "pages", Message: "page count cannot be negative"}
	}
	return nil
}

func ratingBoundMessage(kind domain.Kind) string {
	if kind == domain.KindBook {
		return "rating must be between 0 and 5"
	}
	return "rating must be between 0 and 10"
}
