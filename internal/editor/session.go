package editor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"learnhub/internal/client"
	"learnhub/internal/domain"
	"learnhub/internal/logger"
	"learnhub/internal/media"
)

const (
	StageDetails = 1
	StageContent = 2
	StageStatus  = 3
)

// Session is one operator's pass through the three-stage course editor.
// All mutable state is owned here; every exported method takes the session
// lock, so late HTTP requests racing a teardown degrade to ErrSessionClosed
// instead of touching freed state.
type Session struct {
	mu sync.Mutex

	id       string
	identity Identity
	courseID string

	stage    int
	draft    CourseDraft
	snapshot CourseDraft
	sections []Section
	drafts   map[string]*LessonDraft

	media   *media.Store
	backend CourseBackend
	log     *logger.Logger

	closed     bool
	lastActive time.Time
}

func (s *Session) ID() string       { return s.id }
func (s *Session) CourseID() string { return s.courseID }
func (s *Session) Owner() string    { return s.identity.UserID }

// Drafts returns a copy of the open lesson drafts, keyed by section id.
func (s *Session) Drafts() map[string]LessonDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]LessonDraft, len(s.drafts))
	for id, d := range s.drafts {
		out[id] = *d
	}
	return out
}

// PreviewPath resolves a staged preview id to its file on disk.
func (s *Session) PreviewPath(previewID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false
	}
	p, ok := s.media.Get(previewID)
	if !ok {
		return "", false
	}
	return p.Path, true
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

func (s *Session) guard() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.touch()
	return nil
}

// Stage returns the active stage, 1..3.
func (s *Session) Stage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Progress is the wizard completion percentage.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.stage) / 3 * 100
}

func (s *Session) advance() {
	if s.stage < StageStatus {
		s.stage++
	}
}

// Retreat steps back one stage; it never goes below the details stage and
// never talks to the backend.
func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	if s.stage > StageDetails {
		s.stage--
	}
	return nil
}

// SkipToContent is the explicit operator override that bypasses the
// details-stage submit.
func (s *Session) SkipToContent() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	if s.stage == StageDetails {
		s.stage = StageContent
	}
	return nil
}

// Draft returns a copy of the current course draft.
func (s *Session) Draft() CourseDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	d.Tags = append([]string(nil), s.draft.Tags...)
	d.Instructions = append([]string(nil), s.draft.Instructions...)
	return d
}

// Sections returns a copy of the section list.
func (s *Session) Sections() []Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Section, len(s.sections))
	for i, sec := range s.sections {
		out[i] = sec
		out[i].Lessons = append(make([]Lesson, 0, len(sec.Lessons)), sec.Lessons...)
	}
	return out
}

// UpdateDetails overwrites the scalar detail fields. Purely local.
func (s *Session) UpdateDetails(title, description, categoryID, level string, durationHrs, price int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	s.draft.Title = title
	s.draft.Description = description
	s.draft.CategoryID = categoryID
	s.draft.Level = level
	s.draft.DurationHrs = durationHrs
	s.draft.Price = price
	return nil
}

// AddTag appends a tag. Tags are a set in insertion order: duplicates and
// blank values are silent no-ops.
func (s *Session) AddTag(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, t := range s.draft.Tags {
		if t == value {
			return nil
		}
	}
	s.draft.Tags = append(s.draft.Tags, value)
	return nil
}

func (s *Session) RemoveTag(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.draft.Tags) {
		return fmt.Errorf("%w: tag index out of range", ErrValidation)
	}
	s.draft.Tags = append(s.draft.Tags[:index], s.draft.Tags[index+1:]...)
	return nil
}

// AddInstruction appends a free-form instruction line. Duplicates are
// allowed, blanks are not.
func (s *Session) AddInstruction(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: instruction is empty", ErrValidation)
	}
	s.draft.Instructions = append(s.draft.Instructions, value)
	return nil
}

func (s *Session) RemoveInstruction(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.draft.Instructions) {
		return fmt.Errorf("%w: instruction index out of range", ErrValidation)
	}
	s.draft.Instructions = append(s.draft.Instructions[:index], s.draft.Instructions[index+1:]...)
	return nil
}

// SetThumbnail stages a freshly uploaded thumbnail, releasing whatever local
// preview held the slot before.
func (s *Session) SetThumbnail(fileName string, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	p, err := s.media.Stage(fileName, r)
	if err != nil {
		return err
	}
	s.media.Release(s.draft.ThumbnailPreview)
	s.draft.ThumbnailPreview = p.ID
	return nil
}

// detailsChanged diffs the draft against the post-load snapshot. A staged
// thumbnail always counts as a change.
func (s *Session) detailsChanged() bool {
	if s.draft.ThumbnailPreview != "" {
		return true
	}
	a, b := s.draft, s.snapshot
	return a.Title != b.Title ||
		a.Description != b.Description ||
		a.CategoryID != b.CategoryID ||
		a.Level != b.Level ||
		a.DurationHrs != b.DurationHrs ||
		a.Price != b.Price ||
		!equalStrings(a.Tags, b.Tags) ||
		!equalStrings(a.Instructions, b.Instructions)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SubmitDetails closes stage 1. When nothing differs from the loaded
// snapshot the network call is skipped and the stage still advances.
func (s *Session) SubmitDetails(ctx context.Context) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return SubmitResult{}, err
	}
	if s.stage != StageDetails {
		return SubmitResult{}, fmt.Errorf("%w: not on the details stage", ErrValidation)
	}
	if strings.TrimSpace(s.draft.Title) == "" {
		return SubmitResult{}, fmt.Errorf("%w: course title is required", ErrValidation)
	}

	if !s.detailsChanged() {
		s.advance()
		s.log.Debug("details unchanged, update skipped")
		return SubmitResult{Skipped: true, Stage: s.stage}, nil
	}

	upd := client.CourseUpdate{
		Title:        s.draft.Title,
		Description:  s.draft.Description,
		CategoryID:   s.draft.CategoryID,
		Level:        s.draft.Level,
		DurationHrs:  s.draft.DurationHrs,
		Price:        s.draft.Price,
		Tags:         s.draft.Tags,
		Instructions: s.draft.Instructions,
	}
	var thumb *client.Upload
	if s.draft.ThumbnailPreview != "" {
		p, ok := s.media.Get(s.draft.ThumbnailPreview)
		if !ok {
			return SubmitResult{}, fmt.Errorf("%w: staged thumbnail is gone", ErrValidation)
		}
		thumb = &client.Upload{FileName: p.FileName, Path: p.Path}
	}

	if err := s.backend.UpdateCourse(ctx, s.identity.Token, s.courseID, upd, thumb); err != nil {
		return SubmitResult{}, err
	}

	s.media.Release(s.draft.ThumbnailPreview)
	s.draft.ThumbnailPreview = ""
	s.snapshot = s.draft
	s.snapshot.Tags = append([]string(nil), s.draft.Tags...)
	s.snapshot.Instructions = append([]string(nil), s.draft.Instructions...)
	s.advance()
	return SubmitResult{Stage: s.stage}, nil
}

// SubmitStatus closes the wizard. An unchanged status skips the network call;
// either way a successful submit completes and tears down the session.
func (s *Session) SubmitStatus(ctx context.Context, status string) (PublishResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return PublishResult{}, err
	}
	if s.stage != StageStatus {
		return PublishResult{}, fmt.Errorf("%w: not on the status stage", ErrValidation)
	}
	if status != domain.StatusDraft && status != domain.StatusPublished {
		return PublishResult{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	if status == s.snapshot.Status {
		s.teardown()
		return PublishResult{Skipped: true, Completed: true, Status: status}, nil
	}

	if err := s.backend.UpdateStatus(ctx, s.identity.Token, s.courseID, status); err != nil {
		return PublishResult{}, err
	}

	s.draft.Status = status
	s.snapshot.Status = status
	s.log.Info("course status updated", "status", status)
	s.teardown()
	return PublishResult{Completed: true, Status: status}, nil
}

// AdvanceToStatus moves from the content stage to the status stage. Content
// mutations are already persisted one by one, so there is nothing to submit.
func (s *Session) AdvanceToStatus() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	if s.stage != StageContent {
		return fmt.Errorf("%w: not on the content stage", ErrValidation)
	}
	s.advance()
	return nil
}

// Close releases every staged preview exactly once and marks the session
// dead. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.teardown()
}

func (s *Session) teardown() {
	s.closed = true
	s.drafts = map[string]*LessonDraft{}
	s.media.Close()
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
