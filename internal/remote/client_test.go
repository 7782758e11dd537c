package remote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afariz/mediashelf/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-key", discardLogger()), srv
}

func TestListItemsMapsMovies(t *testing.T) {
	var gotPath, gotOrder, gotAuth string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotOrder = r.URL.Query().Get("order")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "title": "Alien", "genre": "Sci-Fi", "rating": 8.5, "release_year": 1979, "director": "Ridley Scott", "duration": 117},
			{"id": 2, "title": "Heat", "genre": "Crime", "rating": null, "director": null}
		]`))
	})
	defer srv.Close()

	items, err := client.ListItems(context.Background(), domain.KindMovie)
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}

	if gotPath != "/rest/v1/movies" {
		t.Errorf("path = %s, want /rest/v1/movies", gotPath)
	}
	if gotOrder != "rating.desc" {
		t.Errorf("order = %s, want rating.desc", gotOrder)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %s, want the api key as bearer fallback", gotAuth)
	}

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	first := items[0]
	if first.ID != "1" || first.Kind != domain.KindMovie || first.Creator != "Ridley Scott" ||
		first.DurationMin != 117 || first.Rating != 8.5 {
		t.Errorf("mapped item = %+v", first)
	}
	if items[1].Rating != 0 || items[1].Creator != "" {
		t.Errorf("null columns should map to zero values, got %+v", items[1])
	}
}

func TestListItemsMapsBooks(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/books" {
			t.Errorf("path = %s, want /rest/v1/books", r.URL.Path)
		}
		w.Write([]byte(`[{"id": 9, "title": "Dune", "genre": "Sci-Fi", "rating": 4.5, "author": "Frank Herbert", "pages": 412}]`))
	})
	defer srv.Close()

	items, err := client.ListItems(context.Background(), domain.KindBook)
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if items[0].Creator != "Frank Herbert" || items[0].Pages != 412 || items[0].Kind != domain.KindBook {
		t.Errorf("mapped book = %+v", items[0])
	}
}

func TestGetItemNotFoundOnEmptyResult(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "eq.42" {
			t.Errorf("id filter = %s, want eq.42", got)
		}
		w.Write([]byte(`[]`))
	})
	defer srv.Close()

	_, err := client.GetItem(context.Background(), domain.KindMovie, "42")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, domain.ErrAuthFailed) {
					t.Errorf("error = %v, want ErrAuthFailed", err)
				}
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, domain.ErrAuthFailed) {
					t.Errorf("error = %v, want ErrAuthFailed", err)
				}
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, domain.ErrNotFound) {
					t.Errorf("error = %v, want ErrNotFound", err)
				}
			},
		},
		{
			name:   "rejection with message",
			status: http.StatusBadRequest,
			body:   `{"message": "rating out of range"}`,
			check: func(t *testing.T, err error) {
				var verr *domain.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("error = %v, want ValidationError", err)
				}
				if verr.Message != "rating out of range" {
					t.Errorf("message = %q", verr.Message)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer srv.Close()

			_, err := client.ListItems(context.Background(), domain.KindMovie)
			if err == nil {
				t.Fatal("expected an error")
			}
			tt.check(t, err)
		})
	}
}

func TestTransportFailureIsServerOffline(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key", discardLogger())

	_, err := client.ListItems(context.Background(), domain.KindMovie)
	if !errors.Is(err, domain.ErrServerOffline) {
		t.Errorf("error = %v, want ErrServerOffline", err)
	}
}

func TestInsertItemSendsRepresentationHeader(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Prefer"); got != "return=representation" {
			t.Errorf("Prefer header = %q", got)
		}
		w.Write([]byte(`[{"id": 7, "title": "Alien", "genre": "Sci-Fi", "director": "Ridley Scott"}]`))
	})
	defer srv.Close()

	item, err := client.InsertItem(context.Background(), domain.KindMovie, domain.ItemFields{
		Title: "Alien", Genre: "Sci-Fi", Creator: "Ridley Scott",
	})
	if err != nil {
		t.Fatalf("InsertItem error: %v", err)
	}
	if item.ID != "7" {
		t.Errorf("item.ID = %s, want the server-assigned 7", item.ID)
	}
}

func TestListReviewsOrderAndMapping(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/book_reviews" {
			t.Errorf("path = %s, want /rest/v1/book_reviews", r.URL.Path)
		}
		if got := r.URL.Query().Get("order"); got != "created_at.desc" {
			t.Errorf("order = %s, want created_at.desc", got)
		}
		if got := r.URL.Query().Get("item_id"); got != "eq.9" {
			t.Errorf("item_id = %s, want eq.9", got)
		}
		w.Write([]byte(`[{"id": 3, "item_id": 9, "author_name": "sam", "rating": 4, "text": "great", "created_at": "2024-05-01T10:00:00Z"}]`))
	})
	defer srv.Close()

	reviews, err := client.ListReviews(context.Background(), domain.KindBook, "9")
	if err != nil {
		t.Fatalf("ListReviews error: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("got %d reviews, want 1", len(reviews))
	}
	r := reviews[0]
	if r.ID != "3" || r.ItemID != "9" || r.Author != "sam" || r.CreatedAt.IsZero() {
		t.Errorf("mapped review = %+v", r)
	}
}

func TestAuthenticate(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" {
			t.Errorf("path = %s, want /auth/v1/token", r.URL.Path)
		}
		if got := r.URL.Query().Get("grant_type"); got != "password" {
			t.Errorf("grant_type = %s, want password", got)
		}
		w.Write([]byte(`{"access_token": "session-token", "user": {"email": "admin@example.com", "app_metadata": {"role": "admin"}}}`))
	})
	defer srv.Close()

	user, err := client.Authenticate(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if user.Username != "admin@example.com" || !user.IsAdmin() {
		t.Errorf("user = %+v, want admin", user)
	}
	if client.token != "session-token" {
		t.Error("session token was not installed on the client")
	}
}

func TestAuthenticateRejected(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "invalid_grant"}`))
	})
	defer srv.Close()

	_, err := client.Authenticate(context.Background(), "x", "wrong")
	if !errors.Is(err, domain.ErrAuthFailed) {
		t.Errorf("error = %v, want ErrAuthFailed", err)
	}
}

func TestAuthenticateDefaultsToUserRole(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token": "tok", "user": {"email": "sam@example.com", "app_metadata": {}}}`))
	})
	defer srv.Close()

	user, err := client.Authenticate(context.Background(), "sam@example.com", "pw")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if user.IsAdmin() {
		t.Error("missing role metadata must not grant admin")
	}
}
