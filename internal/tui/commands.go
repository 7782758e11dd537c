package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/afariz/mediashelf/internal/catalog"
	"github.com/afariz/mediashelf/internal/domain"
	"github.com/afariz/mediashelf/internal/reviews"
	"github.com/afariz/mediashelf/internal/session"
)

// Command factories for async operations

// RefreshAllCmd refreshes both collection snapshots.
func RefreshAllCmd(cache *catalog.Cache) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		cache.RefreshAll(ctx)
		return SnapshotsRefreshedMsg{}
	}
}

// RefreshKindCmd refreshes one collection snapshot.
func RefreshKindCmd(cache *catalog.Cache, kind domain.Kind) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		cache.Refresh(ctx, kind)
		return SnapshotRefreshedMsg{Kind: kind}
	}
}

// LoadReviewsCmd loads the review thread for the selection the token was
// issued for. The token travels with the result so the update loop can
// drop stale loads.
func LoadReviewsCmd(loader *reviews.Loader, token session.LoadToken) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		thread := loader.LoadFor(ctx, token.Kind, token.ItemID)
		return ReviewsLoadedMsg{Token: token, Thread: thread}
	}
}

// SubmitReviewCmd submits a review for an item.
func SubmitReviewCmd(loader *reviews.Loader, kind domain.Kind, itemID, author string, rating float64, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		review, err := loader.Submit(ctx, kind, itemID, author, rating, text)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				return ReviewRejectedMsg{Err: verr}
			}
			return ErrMsg{Err: err, Context: "submitting review"}
		}
		return ReviewSubmittedMsg{Review: review}
	}
}

// SaveItemCmd creates an item when id is empty, otherwise updates it.
func SaveItemCmd(cmds *catalog.Commands, kind domain.Kind, id string, fields domain.ItemFields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var (
			item domain.Item
			err  error
		)
		if id == "" {
			item, err = cmds.CreateItem(ctx, kind, fields)
		} else {
			item, err = cmds.UpdateItem(ctx, kind, id, fields)
		}
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				return ItemRejectedMsg{Err: verr}
			}
			return ErrMsg{Err: err, Context: "saving item"}
		}
		return ItemSavedMsg{Item: item, Created: id == ""}
	}
}

// DeleteItemCmd deletes an item.
func DeleteItemCmd(cmds *catalog.Commands, kind domain.Kind, id, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := cmds.DeleteItem(ctx, kind, id); err != nil {
			return ErrMsg{Err: err, Context: "deleting item"}
		}
		return ItemDeletedMsg{Kind: kind, ID: id, Title: title}
	}
}

// ClearStatusCmd clears the status bar after a delay.
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
