package editor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSection(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	sec, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	sections := s.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, Section{ID: "sec_1", Name: "Intro", Created: true, Lessons: []Lesson{}}, sections[0])
	assert.Equal(t, sec.ID, sections[0].ID)
}

func TestAddSectionRejectsBlankName(t *testing.T) {
	backend := &fakeBackend{}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, backend.createSectionCalls)
	assert.Empty(t, s.Sections())
}

func TestAddSectionBackendFailureLeavesStateUnchanged(t *testing.T) {
	backend := &fakeBackend{createSectionErr: errors.New("down")}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.Error(t, err)
	assert.Empty(t, s.Sections())
}

func TestRemoveSectionRequiresConfirmation(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	err = s.RemoveSection(context.Background(), "sec_1", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Len(t, s.Sections(), 1)
	assert.Empty(t, backend.deleteSectionCalls)
}

func TestRemoveSectionConfirmed(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	require.NoError(t, s.RemoveSection(context.Background(), "sec_1", true))
	assert.Empty(t, s.Sections())
	assert.Equal(t, []string{"sec_1"}, backend.deleteSectionCalls)
}

func TestRemoveSectionSkipsBackendWhenNeverPersisted(t *testing.T) {
	backend := &fakeBackend{}
	_, s := newTestSession(t, backend)

	// A section that never made it to the backend has no id to delete.
	s.mu.Lock()
	s.sections = append(s.sections, Section{ID: "local-only", Name: "Pending", Created: false})
	s.mu.Unlock()

	require.NoError(t, s.RemoveSection(context.Background(), "local-only", true))
	assert.Empty(t, backend.deleteSectionCalls)
	assert.Empty(t, s.Sections())
}

func TestRemoveSectionBackendFailureKeepsSection(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1", deleteSectionErr: errors.New("down")}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	err = s.RemoveSection(context.Background(), "sec_1", true)
	require.Error(t, err)
	assert.Len(t, s.Sections(), 1)
}

func TestSelectVideoRejectsOversizedFile(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	err = s.SelectVideo("sec_1", "huge.mp4", 600<<20, strings.NewReader("..."))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	// Nothing was staged and no draft was opened.
	_, ok := s.LessonDraft("sec_1")
	assert.False(t, ok)
}

func TestSelectVideoReplacesPriorPreview(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	var previous string
	for i := 0; i < 5; i++ {
		require.NoError(t, s.SelectVideo("sec_1", "clip.mp4", 100, strings.NewReader("v")))
		d, ok := s.LessonDraft("sec_1")
		require.True(t, ok)
		if previous != "" {
			_, alive := s.PreviewPath(previous)
			assert.False(t, alive, "replaced preview must be released")
		}
		previous = d.PreviewID
	}

	_, alive := s.PreviewPath(previous)
	assert.True(t, alive)
}

func TestSaveDraftValidation(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	// Missing title.
	require.NoError(t, s.SetDraftFields("sec_1", "   ", "desc"))
	require.NoError(t, s.SelectVideo("sec_1", "clip.mp4", 100, strings.NewReader("v")))
	_, err = s.SaveDraft(context.Background(), "sec_1")
	assert.ErrorIs(t, err, ErrValidation)

	// Missing video.
	require.NoError(t, s.CancelEdit("sec_1"))
	require.NoError(t, s.SetDraftFields("sec_1", "Lesson 1", "desc"))
	_, err = s.SaveDraft(context.Background(), "sec_1")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, backend.createSubCalls)
	assert.Empty(t, s.Sections()[0].Lessons)
}

func TestSaveDraftAppendsAndRoundTrips(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1", nextLessonID: "sub_1", nextVideoURL: "https://cdn.example.com/v1.mp4"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	require.NoError(t, s.SetDraftFields("sec_1", "Lesson 1", "First steps"))
	require.NoError(t, s.SelectVideo("sec_1", "clip.mp4", 100, strings.NewReader("v")))

	lesson, err := s.SaveDraft(context.Background(), "sec_1")
	require.NoError(t, err)
	assert.Equal(t, "sub_1", lesson.ID)
	assert.Equal(t, "https://cdn.example.com/v1.mp4", lesson.VideoURL)

	// The draft is gone and its staged preview released.
	_, ok := s.LessonDraft("sec_1")
	assert.False(t, ok)

	// Opening the saved lesson for edit yields exactly its fields.
	require.NoError(t, s.EditLesson("sec_1", 0))
	d, ok := s.LessonDraft("sec_1")
	require.True(t, ok)
	assert.Equal(t, lesson.Title, d.Title)
	assert.Equal(t, lesson.Description, d.Description)
	assert.Equal(t, lesson.VideoURL, d.ExistingVideoURL)
	assert.Equal(t, lesson.ID, d.EditID)
}

func TestSaveDraftEditReplacesInPlace(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1", nextVideoURL: "https://cdn.example.com/v.mp4"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	require.NoError(t, s.SetDraftFields("sec_1", "Lesson 1", "v1"))
	require.NoError(t, s.SelectVideo("sec_1", "a.mp4", 100, strings.NewReader("a")))
	_, err = s.SaveDraft(context.Background(), "sec_1")
	require.NoError(t, err)

	require.NoError(t, s.EditLesson("sec_1", 0))
	require.NoError(t, s.SetDraftFields("sec_1", "Lesson 1 (revised)", "v2"))

	lesson, err := s.SaveDraft(context.Background(), "sec_1")
	require.NoError(t, err)

	lessons := s.Sections()[0].Lessons
	require.Len(t, lessons, 1)
	assert.Equal(t, "Lesson 1 (revised)", lessons[0].Title)
	assert.Equal(t, lesson.ID, lessons[0].ID)
	require.Len(t, backend.updateSubCalls, 1)
}

func TestSaveDraftEditSurvivesSiblingRemoval(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1", nextVideoURL: "https://cdn.example.com/v.mp4"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	for _, title := range []string{"One", "Two", "Three"} {
		require.NoError(t, s.SetDraftFields("sec_1", title, ""))
		require.NoError(t, s.SelectVideo("sec_1", "v.mp4", 100, strings.NewReader("v")))
		_, err = s.SaveDraft(context.Background(), "sec_1")
		require.NoError(t, err)
	}

	second := s.Sections()[0].Lessons[1]
	require.NoError(t, s.EditLesson("sec_1", 1))
	require.NoError(t, s.SetDraftFields("sec_1", "Two (revised)", ""))

	// Deleting an earlier sibling shifts the slice under the open edit.
	require.NoError(t, s.RemoveLesson(context.Background(), "sec_1", 0, true))

	lesson, err := s.SaveDraft(context.Background(), "sec_1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, lesson.ID)
	assert.Equal(t, []string{second.ID}, backend.updateSubCalls)

	var titles []string
	for _, l := range s.Sections()[0].Lessons {
		titles = append(titles, l.Title)
	}
	assert.Equal(t, []string{"Two (revised)", "Three"}, titles)
}

func TestRemoveLessonInvalidatesItsOpenEdit(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1", nextVideoURL: "https://cdn.example.com/v.mp4"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	require.NoError(t, s.SetDraftFields("sec_1", "One", ""))
	require.NoError(t, s.SelectVideo("sec_1", "v.mp4", 100, strings.NewReader("v")))
	_, err = s.SaveDraft(context.Background(), "sec_1")
	require.NoError(t, err)

	require.NoError(t, s.EditLesson("sec_1", 0))
	require.NoError(t, s.RemoveLesson(context.Background(), "sec_1", 0, true))

	_, ok := s.LessonDraft("sec_1")
	assert.False(t, ok)
	_, err = s.SaveDraft(context.Background(), "sec_1")
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestSaveDraftFailureKeepsDraft(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1", createSubErr: errors.New("upload failed")}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	require.NoError(t, s.SetDraftFields("sec_1", "Lesson 1", "d"))
	require.NoError(t, s.SelectVideo("sec_1", "a.mp4", 100, strings.NewReader("a")))

	_, err = s.SaveDraft(context.Background(), "sec_1")
	require.Error(t, err)

	// Draft intact so the operator can retry.
	d, ok := s.LessonDraft("sec_1")
	require.True(t, ok)
	assert.Equal(t, "Lesson 1", d.Title)
	assert.NotEmpty(t, d.PreviewID)
	assert.Empty(t, s.Sections()[0].Lessons)
}

func TestStartDraftReplacesExistingDraft(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	require.NoError(t, s.SelectVideo("sec_1", "a.mp4", 100, strings.NewReader("a")))
	d1, _ := s.LessonDraft("sec_1")

	require.NoError(t, s.StartDraft("sec_1"))
	_, alive := s.PreviewPath(d1.PreviewID)
	assert.False(t, alive, "orphaned draft preview must be released")

	d2, ok := s.LessonDraft("sec_1")
	require.True(t, ok)
	assert.Empty(t, d2.Title)
	assert.Empty(t, d2.EditID)
}

func TestCancelEditReleasesPreview(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	require.NoError(t, s.SelectVideo("sec_1", "a.mp4", 100, strings.NewReader("a")))
	d, _ := s.LessonDraft("sec_1")

	require.NoError(t, s.CancelEdit("sec_1"))
	_, ok := s.LessonDraft("sec_1")
	assert.False(t, ok)
	_, alive := s.PreviewPath(d.PreviewID)
	assert.False(t, alive)
}

func TestRemoveLessonConfirmed(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	for _, title := range []string{"One", "Two", "Three"} {
		require.NoError(t, s.SetDraftFields("sec_1", title, ""))
		require.NoError(t, s.SelectVideo("sec_1", "v.mp4", 100, strings.NewReader("v")))
		_, err = s.SaveDraft(context.Background(), "sec_1")
		require.NoError(t, err)
	}

	target := s.Sections()[0].Lessons[2]

	err = s.RemoveLesson(context.Background(), "sec_1", 2, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	require.NoError(t, s.RemoveLesson(context.Background(), "sec_1", 2, true))
	assert.Equal(t, []string{target.ID}, backend.deleteSubCalls)
	assert.Len(t, s.Sections()[0].Lessons, 2)

	// The removed lesson's local preview, if it had one, is released.
	if target.PreviewID != "" {
		_, alive := s.PreviewPath(target.PreviewID)
		assert.False(t, alive)
	}
}

func TestRemoveLessonKeepsStateOnBackendFailure(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1", nextVideoURL: "https://cdn.example.com/v.mp4"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	require.NoError(t, s.SetDraftFields("sec_1", "One", ""))
	require.NoError(t, s.SelectVideo("sec_1", "v.mp4", 100, strings.NewReader("v")))
	_, err = s.SaveDraft(context.Background(), "sec_1")
	require.NoError(t, err)

	backend.deleteSubErr = errors.New("down")
	err = s.RemoveLesson(context.Background(), "sec_1", 0, true)
	require.Error(t, err)
	assert.Len(t, s.Sections()[0].Lessons, 1)
}

func TestRenameSection(t *testing.T) {
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	require.NoError(t, s.RenameSection(context.Background(), "sec_1", "Getting started"))
	assert.Equal(t, "Getting started", s.Sections()[0].Name)
	assert.Equal(t, []string{"sec_1:Getting started"}, backend.renameSectionCalls)
}

func TestRemoveSectionReleasesAllPreviews(t *testing.T) {
	// No hosted video URL from the backend, so saved lessons keep their
	// local previews; deleting the section must release them all.
	backend := &fakeBackend{nextSectionID: "sec_1"}
	_, s := newTestSession(t, backend)

	_, err := s.AddSection(context.Background(), "Intro")
	require.NoError(t, err)

	require.NoError(t, s.SetDraftFields("sec_1", "One", ""))
	require.NoError(t, s.SelectVideo("sec_1", "v.mp4", 100, strings.NewReader("v")))
	lesson, err := s.SaveDraft(context.Background(), "sec_1")
	require.NoError(t, err)
	require.NotEmpty(t, lesson.PreviewID)

	// An open draft with its own staged video.
	require.NoError(t, s.SelectVideo("sec_1", "w.mp4", 100, strings.NewReader("w")))
	d, _ := s.LessonDraft("sec_1")

	require.NoError(t, s.RemoveSection(context.Background(), "sec_1", true))

	for _, id := range []string{lesson.PreviewID, d.PreviewID} {
		_, alive := s.PreviewPath(id)
		assert.False(t, alive)
	}
}
