package remote

import "encoding/json"

// itemDTO matches a row in the movies or books table. Optional numeric
// columns are nullable, hence the pointers. The id column is numeric but
// treated as opaque above this layer.
type itemDTO struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Genre       string      `json:"genre"`
	Rating      *float64    `json:"rating"`
	ReleaseYear *int        `json:"release_year"`
	Description *string     `json:"description"`
	ImageURL    *string     `json:"image_url"`

	// Movies
	Director *string `json:"director,omitempty"`
	Duration *int    `json:"duration,omitempty"`

	// Books
	Author *string `json:"author,omitempty"`
	Pages  *int    `json:"pages,omitempty"`
}

// itemPayload is the write shape for inserts and updates. Zero optional
// values are sent as nulls so an update can clear a column.
type itemPayload struct {
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Rating      *float64 `json:"rating"`
	ReleaseYear *int     `json:"release_year"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`

	Director *string `json:"director,omitempty"`
	Duration *int    `json:"duration,omitempty"`

	Author *string `json:"author,omitempty"`
	Pages  *int    `json:"pages,omitempty"`
}

// reviewDTO matches a row in the movie_reviews or book_reviews table.
type reviewDTO struct {
	ID        json.Number `json:"id"`
	ItemID    json.Number `json:"item_id"`
	Author    string      `json:"author_name"`
	Rating    float64     `json:"rating"`
	Text      string      `json:"text"`
	CreatedAt string      `json:"created_at"`
}

// reviewPayload is the write shape for review submission.
type reviewPayload struct {
	ItemID string  `json:"item_id"`
	Author string  `json:"author_name"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}
