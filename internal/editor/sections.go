package editor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"learnhub/internal/client"
)

// AddSection creates a section on the backend and appends it locally. The
// create response must carry a real id; the client rejects id-less replies.
func (s *Session) AddSection(ctx context.Context, name string) (Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return Section{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Section{}, fmt.Errorf("%w: section name is required", ErrValidation)
	}

	id, err := s.backend.CreateSection(ctx, s.identity.Token, s.courseID, name)
	if err != nil {
		return Section{}, err
	}

	sec := Section{ID: id, Name: name, Created: true, Lessons: []Lesson{}}
	s.sections = append(s.sections, sec)
	s.log.Debug("section created", "section", id, "name", name)
	return sec, nil
}

// RenameSection updates the section name; the local copy changes only after
// the backend accepts it.
func (s *Session) RenameSection(ctx context.Context, sectionID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: section name is required", ErrValidation)
	}
	sec := s.findSection(sectionID)
	if sec == nil {
		return ErrSectionNotFound
	}
	if err := s.backend.UpdateSection(ctx, s.identity.Token, s.courseID, sectionID, name); err != nil {
		return err
	}
	sec.Name = name
	return nil
}

// RemoveSection deletes a section after explicit confirmation. Sections that
// never reached the backend are removed locally without a network call.
func (s *Session) RemoveSection(ctx context.Context, sectionID string, confirm bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	idx := s.sectionIndex(sectionID)
	if idx < 0 {
		return ErrSectionNotFound
	}
	if !confirm {
		return ErrConfirmationRequired
	}

	sec := s.sections[idx]
	if sec.Created {
		if err := s.backend.DeleteSection(ctx, s.identity.Token, s.courseID, sectionID); err != nil {
			return err
		}
	}

	for _, l := range sec.Lessons {
		s.media.Release(l.PreviewID)
	}
	if d, ok := s.drafts[sectionID]; ok {
		s.media.Release(d.PreviewID)
		delete(s.drafts, sectionID)
	}
	s.sections = append(s.sections[:idx], s.sections[idx+1:]...)
	return nil
}

// StartDraft opens an add-mode lesson draft for the section, replacing any
// draft already open there.
func (s *Session) StartDraft(sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	if s.findSection(sectionID) == nil {
		return ErrSectionNotFound
	}
	s.replaceDraft(sectionID, &LessonDraft{})
	return nil
}

// EditLesson copies a lesson's fields into the section's draft so a save
// replaces instead of appends.
func (s *Session) EditLesson(sectionID string, lessonIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	sec := s.findSection(sectionID)
	if sec == nil {
		return ErrSectionNotFound
	}
	if lessonIndex < 0 || lessonIndex >= len(sec.Lessons) {
		return ErrLessonNotFound
	}
	l := sec.Lessons[lessonIndex]
	s.replaceDraft(sectionID, &LessonDraft{
		Title:            l.Title,
		Description:      l.Description,
		ExistingVideoURL: l.VideoURL,
		EditID:           l.ID,
	})
	return nil
}

// LessonDraft returns the section's open lesson draft, if any.
func (s *Session) LessonDraft(sectionID string) (LessonDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[sectionID]
	if !ok {
		return LessonDraft{}, false
	}
	return *d, true
}

// SetDraftFields updates the open draft's text fields. Opens an add-mode
// draft implicitly when none exists yet.
func (s *Session) SetDraftFields(sectionID, title, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	d, err := s.draftFor(sectionID)
	if err != nil {
		return err
	}
	d.Title = title
	d.Description = description
	return nil
}

// SelectVideo stages a lesson video for the section's draft. Oversized files
// are rejected before anything is written; on success the draft's previous
// local preview is released first.
func (s *Session) SelectVideo(sectionID, fileName string, size int64, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	if size > MaxVideoBytes {
		return fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, fileName, size)
	}
	d, err := s.draftFor(sectionID)
	if err != nil {
		return err
	}
	p, err := s.media.Stage(fileName, r)
	if err != nil {
		return err
	}
	s.media.Release(d.PreviewID)
	d.PreviewID = p.ID
	d.FileName = fileName
	return nil
}

// RemoveVideoFromDraft clears the draft's staged video.
func (s *Session) RemoveVideoFromDraft(sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	d, ok := s.drafts[sectionID]
	if !ok {
		return ErrNoDraft
	}
	s.media.Release(d.PreviewID)
	d.PreviewID = ""
	d.FileName = ""
	return nil
}

// SaveDraft persists the section's draft: create in add mode, update in edit
// mode. A failed call leaves the draft intact so the operator can retry.
func (s *Session) SaveDraft(ctx context.Context, sectionID string) (Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return Lesson{}, err
	}
	sec := s.findSection(sectionID)
	if sec == nil {
		return Lesson{}, ErrSectionNotFound
	}
	if !sec.Created {
		return Lesson{}, fmt.Errorf("%w: section has no backend id yet", ErrValidation)
	}
	d, ok := s.drafts[sectionID]
	if !ok {
		return Lesson{}, ErrNoDraft
	}
	if strings.TrimSpace(d.Title) == "" {
		return Lesson{}, fmt.Errorf("%w: lesson title is required", ErrValidation)
	}
	if d.PreviewID == "" && d.ExistingVideoURL == "" {
		return Lesson{}, fmt.Errorf("%w: lesson video is required", ErrValidation)
	}

	in := client.SubSectionInput{Title: d.Title, Description: d.Description}
	if d.PreviewID != "" {
		p, ok := s.media.Get(d.PreviewID)
		if !ok {
			return Lesson{}, fmt.Errorf("%w: staged video is gone", ErrValidation)
		}
		in.Video = &client.Upload{FileName: p.FileName, Path: p.Path}
	}

	var saved Lesson
	if d.EditID != "" {
		// Resolve the target by its stable id at save time; the slice may
		// have shifted since the edit was opened.
		idx := indexOfLesson(sec, d.EditID)
		if idx < 0 {
			return Lesson{}, ErrLessonNotFound
		}
		target := sec.Lessons[idx]
		resp, err := s.backend.UpdateSubSection(ctx, s.identity.Token, s.courseID, sectionID, target.ID, in)
		if err != nil {
			return Lesson{}, err
		}
		saved = s.lessonFromResponse(resp.ID, resp.VideoURL, d)
		// Replacing the lesson may orphan its old local preview.
		if target.PreviewID != "" && target.PreviewID != saved.PreviewID {
			s.media.Release(target.PreviewID)
		}
		sec.Lessons[idx] = saved
	} else {
		resp, err := s.backend.CreateSubSection(ctx, s.identity.Token, s.courseID, sectionID, in)
		if err != nil {
			return Lesson{}, err
		}
		saved = s.lessonFromResponse(resp.ID, resp.VideoURL, d)
		sec.Lessons = append(sec.Lessons, saved)
	}

	delete(s.drafts, sectionID)
	return saved, nil
}

// CancelEdit drops the section's draft without contacting the backend.
func (s *Session) CancelEdit(sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	d, ok := s.drafts[sectionID]
	if !ok {
		return ErrNoDraft
	}
	s.media.Release(d.PreviewID)
	delete(s.drafts, sectionID)
	return nil
}

// RemoveLesson deletes a lesson after explicit confirmation, backend first.
func (s *Session) RemoveLesson(ctx context.Context, sectionID string, lessonIndex int, confirm bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	sec := s.findSection(sectionID)
	if sec == nil {
		return ErrSectionNotFound
	}
	if lessonIndex < 0 || lessonIndex >= len(sec.Lessons) {
		return ErrLessonNotFound
	}
	if !confirm {
		return ErrConfirmationRequired
	}

	l := sec.Lessons[lessonIndex]
	if l.ID != "" {
		if err := s.backend.DeleteSubSection(ctx, s.identity.Token, s.courseID, sectionID, l.ID); err != nil {
			return err
		}
	}
	// An open edit of the removed lesson has nothing left to save.
	if d, ok := s.drafts[sectionID]; ok && d.EditID != "" && d.EditID == l.ID {
		s.media.Release(d.PreviewID)
		delete(s.drafts, sectionID)
	}
	s.media.Release(l.PreviewID)
	sec.Lessons = append(sec.Lessons[:lessonIndex], sec.Lessons[lessonIndex+1:]...)
	return nil
}

// lessonFromResponse keeps what the operator typed and takes identity and
// hosting from the backend. When the backend has not echoed a hosted video
// URL yet, the staged preview's ownership moves from the draft to the lesson.
func (s *Session) lessonFromResponse(id, videoURL string, d *LessonDraft) Lesson {
	l := Lesson{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		VideoURL:    videoURL,
	}
	if videoURL == "" {
		l.VideoURL = d.ExistingVideoURL
		l.PreviewID = d.PreviewID
	} else if d.PreviewID != "" {
		s.media.Release(d.PreviewID)
	}
	return l
}

func (s *Session) findSection(sectionID string) *Section {
	if i := s.sectionIndex(sectionID); i >= 0 {
		return &s.sections[i]
	}
	return nil
}

func indexOfLesson(sec *Section, lessonID string) int {
	for i := range sec.Lessons {
		if sec.Lessons[i].ID == lessonID {
			return i
		}
	}
	return -1
}

func (s *Session) sectionIndex(sectionID string) int {
	for i := range s.sections {
		if s.sections[i].ID == sectionID {
			return i
		}
	}
	return -1
}

func (s *Session) draftFor(sectionID string) (*LessonDraft, error) {
	if s.findSection(sectionID) == nil {
		return nil, ErrSectionNotFound
	}
	if d, ok := s.drafts[sectionID]; ok {
		return d, nil
	}
	d := &LessonDraft{}
	s.drafts[sectionID] = d
	return d, nil
}

func (s *Session) replaceDraft(sectionID string, d *LessonDraft) {
	if old, ok := s.drafts[sectionID]; ok {
		s.media.Release(old.PreviewID)
	}
	s.drafts[sectionID] = d
}
