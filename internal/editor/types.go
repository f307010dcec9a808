package editor

import (
	"context"

	"learnhub/internal/client"
	"learnhub/internal/domain"
)

// MaxVideoBytes is the upload ceiling for lesson videos.
const MaxVideoBytes = 500 << 20

// Identity is the authenticated caller, resolved once by middleware and
// passed in explicitly. The token is attached to every backend call.
type Identity struct {
	UserID string
	Token  string
}

// CourseBackend is the slice of the course service the editor needs.
// *client.CourseClient satisfies it; tests plug in fakes.
type CourseBackend interface {
	GetCourse(ctx context.Context, token, courseID string) (*domain.Course, error)
	UpdateCourse(ctx context.Context, token, courseID string, upd client.CourseUpdate, thumbnail *client.Upload) error
	UpdateStatus(ctx context.Context, token, courseID, status string) error
	CreateSection(ctx context.Context, token, courseID, name string) (string, error)
	UpdateSection(ctx context.Context, token, courseID, sectionID, name string) error
	DeleteSection(ctx context.Context, token, courseID, sectionID string) error
	CreateSubSection(ctx context.Context, token, courseID, sectionID string, in client.SubSectionInput) (*domain.Lesson, error)
	UpdateSubSection(ctx context.Context, token, courseID, sectionID, subSectionID string, in client.SubSectionInput) (*domain.Lesson, error)
	DeleteSubSection(ctx context.Context, token, courseID, sectionID, subSectionID string) error
}

// CourseDraft holds the editable detail fields. ThumbnailPreview is a staged
// local upload id; ThumbnailURL is whatever the backend already hosts.
type CourseDraft struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	CategoryID       string   `json:"category_id"`
	Level            string   `json:"level"`
	DurationHrs      int      `json:"duration_hours"`
	Price            int      `json:"price"`
	Tags             []string `json:"tags"`
	Instructions     []string `json:"instructions"`
	ThumbnailURL     string   `json:"thumbnail_url"`
	ThumbnailPreview string   `json:"thumbnail_preview,omitempty"`
	Status           string   `json:"status"`
}

// Lesson is a sub-section as the editor sees it. VideoURL is backend-hosted;
// PreviewID, when set, is a locally staged upload the session still owns.
// Only PreviewID is ever released; backend URLs are not revocable.
type Lesson struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	PreviewID   string `json:"preview_id,omitempty"`
}

type Section struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Created bool     `json:"created"`
	Lessons []Lesson `json:"lessons"`
}

// LessonDraft is the transient per-section form. EditID is empty in add
// mode, otherwise the stable id of the lesson being replaced on save.
// Sibling deletes shift slice positions, so the target is never tracked by
// index.
type LessonDraft struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	FileName         string `json:"file_name,omitempty"`
	PreviewID        string `json:"preview_id,omitempty"`
	ExistingVideoURL string `json:"existing_video_url,omitempty"`
	EditID           string `json:"edit_id,omitempty"`
}

// SubmitResult reports a stage submission. Skipped means change detection
// found nothing to send, so no network call was made.
type SubmitResult struct {
	Skipped bool `json:"skipped"`
	Stage   int  `json:"stage"`
}

// PublishResult reports the final stage. Completed means the session is done
// and has been torn down.
type PublishResult struct {
	Skipped   bool   `json:"skipped"`
	Completed bool   `json:"completed"`
	Status    string `json:"status"`
}
