package editor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"learnhub/internal/client"
	"learnhub/internal/domain"
	"learnhub/internal/logger"
)

// fakeBackend records every call so tests can assert which mutations reached
// the network.
type fakeBackend struct {
	course *domain.Course
	getErr error

	updateCourseCalls int
	updateCourseErr   error
	lastUpdate        client.CourseUpdate
	lastThumbnail     *client.Upload

	statusCalls []string
	statusErr   error

	nextSectionID      string
	createSectionCalls []string
	createSectionErr   error
	renameSectionCalls []string
	deleteSectionCalls []string
	deleteSectionErr   error

	nextLessonID   string
	nextVideoURL   string
	createSubCalls []client.SubSectionInput
	createSubErr   error
	updateSubCalls []string
	updateSubErr   error
	deleteSubCalls []string
	deleteSubErr   error
}

func (f *fakeBackend) GetCourse(ctx context.Context, token, courseID string) (*domain.Course, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c := *f.course
	return &c, nil
}

func (f *fakeBackend) UpdateCourse(ctx context.Context, token, courseID string, upd client.CourseUpdate, thumbnail *client.Upload) error {
	if f.updateCourseErr != nil {
		return f.updateCourseErr
	}
	f.updateCourseCalls++
	f.lastUpdate = upd
	f.lastThumbnail = thumbnail
	return nil
}

func (f *fakeBackend) UpdateStatus(ctx context.Context, token, courseID, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusCalls = append(f.statusCalls, status)
	return nil
}

func (f *fakeBackend) CreateSection(ctx context.Context, token, courseID, name string) (string, error) {
	if f.createSectionErr != nil {
		return "", f.createSectionErr
	}
	f.createSectionCalls = append(f.createSectionCalls, name)
	if f.nextSectionID != "" {
		return f.nextSectionID, nil
	}
	return fmt.Sprintf("sec_%d", len(f.createSectionCalls)), nil
}

func (f *fakeBackend) UpdateSection(ctx context.Context, token, courseID, sectionID, name string) error {
	f.renameSectionCalls = append(f.renameSectionCalls, sectionID+":"+name)
	return nil
}

func (f *fakeBackend) DeleteSection(ctx context.Context, token, courseID, sectionID string) error {
	if f.deleteSectionErr != nil {
		return f.deleteSectionErr
	}
	f.deleteSectionCalls = append(f.deleteSectionCalls, sectionID)
	return nil
}

func (f *fakeBackend) CreateSubSection(ctx context.Context, token, courseID, sectionID string, in client.SubSectionInput) (*domain.Lesson, error) {
	if f.createSubErr != nil {
		return nil, f.createSubErr
	}
	f.createSubCalls = append(f.createSubCalls, in)
	id := f.nextLessonID
	if id == "" {
		id = fmt.Sprintf("sub_%d", len(f.createSubCalls))
	}
	return &domain.Lesson{ID: id, Title: in.Title, Description: in.Description, VideoURL: f.nextVideoURL}, nil
}

func (f *fakeBackend) UpdateSubSection(ctx context.Context, token, courseID, sectionID, subSectionID string, in client.SubSectionInput) (*domain.Lesson, error) {
	if f.updateSubErr != nil {
		return nil, f.updateSubErr
	}
	f.updateSubCalls = append(f.updateSubCalls, subSectionID)
	return &domain.Lesson{ID: subSectionID, Title: in.Title, Description: in.Description, VideoURL: f.nextVideoURL}, nil
}

func (f *fakeBackend) DeleteSubSection(ctx context.Context, token, courseID, sectionID, subSectionID string) error {
	if f.deleteSubErr != nil {
		return f.deleteSubErr
	}
	f.deleteSubCalls = append(f.deleteSubCalls, subSectionID)
	return nil
}

func testCourse() *domain.Course {
	return &domain.Course{
		ID:           "course_1",
		Title:        "Old",
		Description:  "About things",
		CategoryID:   "cat_1",
		Level:        "Beginner",
		DurationHrs:  10,
		Price:        499,
		Tags:         []string{"go"},
		Instructions: []string{"Watch every lesson"},
		Status:       domain.StatusDraft,
	}
}

func newTestSession(t *testing.T, backend *fakeBackend) (*Manager, *Session) {
	t.Helper()
	if backend.course == nil {
		backend.course = testCourse()
	}
	m := NewManager(backend, t.TempDir(), 0, logger.Nop())
	s, err := m.Start(context.Background(), Identity{UserID: "user_1", Token: "tok"}, backend.course.ID)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close(s.ID()) })
	return m, s
}
