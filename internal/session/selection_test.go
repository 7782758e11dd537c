package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/afariz/mediashelf/internal/domain"
)

func newTestController() *Controller {
	return NewController(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func movie(id, title string, rating float64) domain.Item {
	return domain.Item{ID: id, Kind: domain.KindMovie, Title: title, Rating: rating}
}

func TestSelectOpensAndClears(t *testing.T) {
	c := newTestController()
	if c.IsOpen() {
		t.Fatal("new controller should be closed")
	}

	c.Select(movie("1", "Alien", 8.5))

	if !c.IsOpen() {
		t.Fatal("expected controller open after Select")
	}
	if !c.Loading() {
		t.Error("expected review load in flight after Select")
	}
	if item, _ := c.Item(); item.ID != "1" {
		t.Errorf("open item = %s, want 1", item.ID)
	}
	if c.Thread() != nil {
		t.Error("thread should be cleared on Select")
	}
}

func TestApplyThreadAcceptsMatchingToken(t *testing.T) {
	c := newTestController()
	token := c.Select(movie("1", "Alien", 8.5))

	thread := []domain.Review{{ID: "r1", ItemID: "1", Author: "sam"}}
	if !c.ApplyThread(token, thread) {
		t.Fatal("expected matching token to be accepted")
	}
	if c.Loading() {
		t.Error("loading should clear once the thread lands")
	}
	if len(c.Thread()) != 1 || c.Thread()[0].ID != "r1" {
		t.Errorf("thread = %v, want the loaded review", c.Thread())
	}
}

func TestApplyThreadDiscardsStaleToken(t *testing.T) {
	c := newTestController()
	stale := c.Select(movie("1", "Alien", 8.5))
	c.Select(movie("2", "Heat", 8.0))

	if c.ApplyThread(stale, []domain.Review{{ID: "r1", ItemID: "1"}}) {
		t.Fatal("stale token must be discarded")
	}
	if c.Thread() != nil {
		t.Error("stale thread must not be installed")
	}
	if !c.Loading() {
		t.Error("the current selection's load is still in flight")
	}
}

func TestApplyThreadAfterClose(t *testing.T) {
	c := newTestController()
	token := c.Select(movie("1", "Alien", 8.5))
	c.Close()

	if c.ApplyThread(token, []domain.Review{{ID: "r1"}}) {
		t.Error("loads for a closed selection must be discarded")
	}
	if c.IsOpen() {
		t.Error("controller should stay closed")
	}
}

func TestReloadTokenInvalidatesPriorLoad(t *testing.T) {
	c := newTestController()
	first := c.Select(movie("1", "Alien", 8.5))

	second, ok := c.ReloadToken()
	if !ok {
		t.Fatal("expected a reload token while open")
	}

	if c.ApplyThread(first, []domain.Review{{ID: "old"}}) {
		t.Error("pre-reload token must be stale")
	}
	if !c.ApplyThread(second, []domain.Review{{ID: "new"}}) {
		t.Error("reload token must be accepted")
	}
	if len(c.Thread()) != 1 || c.Thread()[0].ID != "new" {
		t.Errorf("thread = %v, want the reloaded review", c.Thread())
	}
}

func TestReloadTokenClosed(t *testing.T) {
	c := newTestController()
	if _, ok := c.ReloadToken(); ok {
		t.Error("closed controller should not hand out reload tokens")
	}
}

func TestReconcileUpdatesOpenItem(t *testing.T) {
	c := newTestController()
	token := c.Select(movie("1", "Alien", 8.5))
	c.ApplyThread(token, []domain.Review{{ID: "r1"}})

	// A refresh arrives with the item's rating edited remotely.
	snapshot := []domain.Item{movie("1", "Alien", 9.1), movie("2", "Heat", 8.0)}
	outcome := c.Reconcile(domain.KindMovie, snapshot)

	if outcome != ReconcileUpdated {
		t.Fatalf("outcome = %v, want ReconcileUpdated", outcome)
	}
	item, _ := c.Item()
	if item.Rating != 9.1 {
		t.Errorf("rating = %v, want the remote edit 9.1", item.Rating)
	}
	if len(c.Thread()) != 1 {
		t.Error("reconcile must keep the loaded thread")
	}
}

func TestReconcileClosesWhenItemDeleted(t *testing.T) {
	c := newTestController()
	c.Select(movie("1", "Alien", 8.5))

	outcome := c.Reconcile(domain.KindMovie, []domain.Item{movie("2", "Heat", 8.0)})

	if outcome != ReconcileClosed {
		t.Fatalf("outcome = %v, want ReconcileClosed", outcome)
	}
	if c.IsOpen() {
		t.Error("selection must close when its item vanishes")
	}
}

func TestReconcileIgnoresOtherKind(t *testing.T) {
	c := newTestController()
	c.Select(movie("1", "Alien", 8.5))

	outcome := c.Reconcile(domain.KindBook, nil)

	if outcome != ReconcileUnchanged {
		t.Fatalf("outcome = %v, want ReconcileUnchanged", outcome)
	}
	if !c.IsOpen() {
		t.Error("a book refresh must not disturb an open movie")
	}
}

func TestReconcileClosedController(t *testing.T) {
	c := newTestController()
	if outcome := c.Reconcile(domain.KindMovie, []domain.Item{movie("1", "Alien", 8.5)}); outcome != ReconcileUnchanged {
		t.Errorf("outcome = %v, want ReconcileUnchanged on closed controller", outcome)
	}
}
