package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind distinguishes the two parallel catalogs.
type Kind int

const (
	KindMovie Kind = iota
	KindBook
)

// AllKinds returns both catalog kinds in display order.
func AllKinds() []Kind {
	return []Kind{KindMovie, KindBook}
}

// String returns the lowercase singular name ("movie", "book").
func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindBook:
		return "book"
	default:
		return "unknown"
	}
}

// Plural returns the collection name used for API paths and storage keys.
func (k Kind) Plural() string {
	switch k {
	case KindMovie:
		return "movies"
	case KindBook:
		return "books"
	default:
		return "unknown"
	}
}

// RatingBound returns the inclusive upper rating bound for the kind:
// movies are rated 0-10, books 0-5.
func (k Kind) RatingBound() float64 {
	if k == KindBook {
		return 5
	}
	return 10
}

// CreatorLabel returns the display label for the creator field.
func (k Kind) CreatorLabel() string {
	if k == KindBook {
		return "Author"
	}
	return "Director"
}

// ParseKind converts a string to a Kind. Accepts singular and plural forms.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "movie", "movies":
		return KindMovie, nil
	case "book", "books":
		return KindBook, nil
	}
	return KindMovie, fmt.Errorf("unknown kind %q", raw)
}

// Item is a single catalog entry of either kind. Items are immutable once
// fetched: a refresh replaces the whole snapshot, nothing is patched in
// place. Identifiers are unique within a kind but carry no cross-kind
// meaning.
type Item struct {
	ID          string  `json:"id"`           // Server-assigned opaque identifier
	Kind        Kind    `json:"kind"`         // Movie or Book
	Title       string  `json:"title"`        // Display title
	Genre       string  `json:"genre"`        // Single genre label
	Rating      float64 `json:"rating"`       // 0 = unrated; bounded by Kind.RatingBound()
	ReleaseYear int     `json:"release_year"` // Release/publication year (0 if unknown)
	Creator     string  `json:"creator"`      // Director (movies) or author (books)
	Description string  `json:"description"`  // Synopsis, may be empty
	ImageURL    string  `json:"image_url"`    // Poster/cover URL, may be empty

	// Kind-specific payload; check Kind before reading.
	DurationMin int `json:"duration_min,omitempty"` // Movies: runtime in minutes
	Pages       int `json:"pages,omitempty"`        // Books: page count
}

// CreatorOrUnknown returns the creator or a placeholder for display.
func (i Item) CreatorOrUnknown() string {
	if i.Creator == "" {
		return "Unknown"
	}
	return i.Creator
}

// FormattedRating renders the rating against the kind's scale, "N/A" when
// unrated.
func (i Item) FormattedRating() string {
	if i.Rating <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f/%.0f", i.Rating, i.Kind.RatingBound())
}

// Extent renders the kind-specific payload ("142 min" or "310 pages").
func (i Item) Extent() string {
	switch i.Kind {
	case KindMovie:
		if i.DurationMin > 0 {
			return fmt.Sprintf("%d min", i.DurationMin)
		}
	case KindBook:
		if i.Pages > 0 {
			return fmt.Sprintf("%d pages", i.Pages)
		}
	}
	return ""
}

// ItemFields carries the mutable fields of an admin create/update.
type ItemFields struct {
	Title       string
	Genre       string
	Rating      float64
	ReleaseYear int
	Creator     string
	Description string
	ImageURL    string
	DurationMin int
	Pages       int
}

// Review is one entry in an item's review thread. Reviews are created via
// submission and never edited or deleted by this client.
type Review struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Author    string    `json:"author_name"`
	Rating    float64   `json:"rating"` // Bounded by the item kind's rating scale
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Role separates the admin mutation surface from regular browsing.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the authenticated session identity.
type User struct {
	Username string
	Role     Role
}

// IsAdmin reports whether the user may use the admin mutation surface.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
