package domain

import "time"

const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
)

type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CategoryID   string    `json:"category_id"`
	Level        string    `json:"level"`
	DurationHrs  int       `json:"duration_hours"`
	Price        int       `json:"price"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Tags         []string  `json:"tags"`
	Instructions []string  `json:"instructions"`
	Status       string    `json:"status"`
	Sections     []Section `json:"sections,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Section groups lessons inside a course. Order of the slice is
// creation order; the backend does not keep a separate sort key.
type Section struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Lessons []Lesson `json:"sub_sections,omitempty"`
}

type Lesson struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourseSummary is the catalog list shape: no section content,
// enrollment progress for the requesting user when available.
type CourseSummary struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Price        int     `json:"price"`
	ProgressPct  float64 `json:"progress_pct"`
}
