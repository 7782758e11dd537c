// Package session tracks the currently open item and its review thread.
//
// A selection references its item by value at selection time; snapshots
// are replaced wholesale and carry no stable object identity, so after
// every refresh the selection is re-resolved against the new snapshot by
// id (Reconcile). The controller is only ever driven from the UI update
// loop, so it carries no lock.
package session

import (
	"log/slog"

	"github.com/afariz/mediashelf/internal/domain"
)

// LoadToken tags an asynchronous review load with the selection it was
// issued for. A result whose token no longer matches the current selection
// arrived late and must be discarded.
type LoadToken struct {
	gen    int
	Kind   domain.Kind
	ItemID string
}

// ReconcileOutcome describes what a snapshot refresh did to the selection.
type ReconcileOutcome int

const (
	// ReconcileUnchanged: nothing was open for this kind.
	ReconcileUnchanged ReconcileOutcome = iota
	// ReconcileUpdated: the open item was found in the new snapshot and
	// replaced in place, picking up any remote edit. The thread is kept.
	ReconcileUpdated
	// ReconcileClosed: the open item is gone from the new snapshot (deleted
	// remotely); the selection was closed and the thread dropped.
	ReconcileClosed
)

// Controller is the selection state machine: Closed, or Open(item).
type Controller struct {
	logger *slog.Logger

	open    bool
	item    domain.Item
	thread  []domain.Review
	loading bool
	gen     int // Bumped on every transition; stale-load guard
}

// NewController returns a controller in the Closed state.
func NewController(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{logger: logger}
}

// Select opens the item and returns the token the review load for it must
// carry. Any previous in-flight load is implicitly invalidated.
func (c *Controller) Select(item domain.Item) LoadToken {
	c.gen++
	c.open = true
	c.item = item
	c.thread = nil
	c.loading = true
	return LoadToken{gen: c.gen, Kind: item.Kind, ItemID: item.ID}
}

// Close dismisses the selection. In-flight loads for it will be discarded
// on arrival.
func (c *Controller) Close() {
	c.gen++
	c.open = false
	c.item = domain.Item{}
	c.thread = nil
	c.loading = false
}

// IsOpen reports whether a selection is open.
func (c *Controller) IsOpen() bool { return c.open }

// Item returns the currently open item.
func (c *Controller) Item() (domain.Item, bool) {
	return c.item, c.open
}

// Thread returns the current review thread, newest first.
func (c *Controller) Thread() []domain.Review { return c.thread }

// Loading reports whether a review load for the open selection is in
// flight.
func (c *Controller) Loading() bool { return c.open && c.loading }

// ReloadToken returns a fresh token for re-fetching the open selection's
// thread (after a review submission). Returns false when nothing is open.
func (c *Controller) ReloadToken() (LoadToken, bool) {
	if !c.open {
		return LoadToken{}, false
	}
	c.gen++
	c.loading = true
	return LoadToken{gen: c.gen, Kind: c.item.Kind, ItemID: c.item.ID}, true
}

// ApplyThread installs a loaded review thread if its token still matches
// the current selection. It reports whether the result was accepted; a
// stale result is dropped without side effects.
func (c *Controller) ApplyThread(token LoadToken, thread []domain.Review) bool {
	if !c.open || token.gen != c.gen || token.ItemID != c.item.ID || token.Kind != c.item.Kind {
		c.logger.Debug("discarding stale review load", "itemID", token.ItemID)
		return false
	}
	c.thread = thread
	c.loading = false
	return true
}

// Reconcile re-resolves the selection against a freshly installed snapshot
// of the given kind. The open item is looked up by id: found means the
// held value is replaced (an admin edit becomes visible), missing means
// the item was deleted and the selection closes silently.
func (c *Controller) Reconcile(kind domain.Kind, snapshot []domain.Item) ReconcileOutcome {
	if !c.open || c.item.Kind != kind {
		return ReconcileUnchanged
	}
	for _, item := range snapshot {
		if item.ID == c.item.ID {
			c.item = item
			return ReconcileUpdated
		}
	}
	c.logger.Info("open item vanished from snapshot, closing selection",
		"kind", kind.String(), "id", c.item.ID)
	c.Close()
	return ReconcileClosed
}
