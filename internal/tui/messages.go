package tui

import (
	"github.com/afariz/mediashelf/internal/domain"
	"github.com/afariz/mediashelf/internal/session"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SnapshotsRefreshedMsg signals that every collection snapshot has been
// refreshed from the server.
type SnapshotsRefreshedMsg struct{}

// SnapshotRefreshedMsg signals that one collection snapshot has been
// refreshed from the server.
type SnapshotRefreshedMsg struct {
	Kind domain.Kind
}

// ReviewsLoadedMsg carries a loaded review thread together with the load
// token it was requested under. Stale loads are discarded by the session
// controller.
type ReviewsLoadedMsg struct {
	Token  session.LoadToken
	Thread []domain.Review
}

// ReviewSubmittedMsg signals that a review was accepted by the server.
type ReviewSubmittedMsg struct {
	Review domain.Review
}

// ReviewRejectedMsg carries a validation failure from review submission
// back to the form.
type ReviewRejectedMsg struct {
	Err *domain.ValidationError
}

// ItemSavedMsg signals that an admin create or update was accepted.
type ItemSavedMsg struct {
	Item    domain.Item
	Created bool
}

// ItemRejectedMsg carries a validation failure from an admin form.
type ItemRejectedMsg struct {
	Err *domain.ValidationError
}

// ItemDeletedMsg signals that an admin delete was accepted.
type ItemDeletedMsg struct {
	Kind  domain.Kind
	ID    string
	Title string
}

// StatusMsg sets a temporary status bar message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
