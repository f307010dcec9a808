package client

import (
	"context"
	"encoding/json"
	"fmt"

	"learnhub/internal/domain"
)

// CourseClient talks to the course service's authoring endpoints.
type CourseClient struct {
	backend
}

func NewCourseClient(url string) *CourseClient {
	return &CourseClient{backend: newBackend(url)}
}

// CourseUpdate carries the editable detail fields. Tags and instructions are
// JSON-encoded into the multipart body; the thumbnail travels as a file part.
type CourseUpdate struct {
	Title        string
	Description  string
	CategoryID   string
	Level        string
	DurationHrs  int
	Price        int
	Tags         []string
	Instructions []string
}

func (c *CourseClient) GetCourse(ctx context.Context, token, courseID string) (*domain.Course, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var course domain.Course
	if err := c.doJSON(ctx, "GET", "/courses/"+courseID, token, nil, &course); err != nil {
		return nil, err
	}
	if course.ID == "" {
		return nil, fmt.Errorf("%w: course without id", ErrBadResponse)
	}
	return &course, nil
}

func (c *CourseClient) UpdateCourse(ctx context.Context, token, courseID string, upd CourseUpdate, thumbnail *Upload) error {
	if err := requireToken(token); err != nil {
		return err
	}

	tags, err := json.Marshal(upd.Tags)
	if err != nil {
		return err
	}
	instructions, err := json.Marshal(upd.Instructions)
	if err != nil {
		return err
	}

	fields := map[string]string{
		"title":          upd.Title,
		"description":    upd.Description,
		"category_id":    upd.CategoryID,
		"level":          upd.Level,
		"duration_hours": fmt.Sprintf("%d", upd.DurationHrs),
		"price":          fmt.Sprintf("%d", upd.Price),
		"tags":           string(tags),
		"instructions":   string(instructions),
	}
	files := map[string]Upload{}
	if thumbnail != nil {
		files["thumbnail"] = *thumbnail
	}
	return c.doMultipart(ctx, "PUT", "/courses/"+courseID, token, fields, files, nil)
}

func (c *CourseClient) UpdateStatus(ctx context.Context, token, courseID, status string) error {
	if err := requireToken(token); err != nil {
		return err
	}
	return c.doJSON(ctx, "PATCH", "/courses/"+courseID+"/status", token, map[string]string{
		"status": status,
	}, nil)
}

func (c *CourseClient) CreateSection(ctx context.Context, token, courseID, name string) (string, error) {
	if err := requireToken(token); err != nil {
		return "", err
	}
	var out struct {
		ID string `json:"id"`
	}
	err := c.doJSON(ctx, "POST", "/courses/"+courseID+"/sections", token, map[string]string{
		"name": name,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: created section without id", ErrBadResponse)
	}
	return out.ID, nil
}

func (c *CourseClient) UpdateSection(ctx context.Context, token, courseID, sectionID, name string) error {
	if err := requireToken(token); err != nil {
		return err
	}
	return c.doJSON(ctx, "PUT", "/courses/"+courseID+"/sections/"+sectionID, token, map[string]string{
		"name": name,
	}, nil)
}

func (c *CourseClient) DeleteSection(ctx context.Context, token, courseID, sectionID string) error {
	if err := requireToken(token); err != nil {
		return err
	}
	return c.doJSON(ctx, "DELETE", "/courses/"+courseID+"/sections/"+sectionID, token, nil, nil)
}

// SubSectionInput is one lesson create/update. A nil Video means "keep the
// existing upload" on update.
type SubSectionInput struct {
	Title       string
	Description string
	Video       *Upload
}

func (c *CourseClient) CreateSubSection(ctx context.Context, token, courseID, sectionID string, in SubSectionInput) (*domain.Lesson, error) {
	return c.upsertSubSection(ctx, token,
		fmt.Sprintf("/courses/%s/sections/%s/subsections", courseID, sectionID), "POST", in)
}

func (c *CourseClient) UpdateSubSection(ctx context.Context, token, courseID, sectionID, subSectionID string, in SubSectionInput) (*domain.Lesson, error) {
	return c.upsertSubSection(ctx, token,
		fmt.Sprintf("/courses/%s/sections/%s/subsections/%s", courseID, sectionID, subSectionID), "PUT", in)
}

func (c *CourseClient) DeleteSubSection(ctx context.Context, token, courseID, sectionID, subSectionID string) error {
	if err := requireToken(token); err != nil {
		return err
	}
	path := fmt.Sprintf("/courses/%s/sections/%s/subsections/%s", courseID, sectionID, subSectionID)
	return c.doJSON(ctx, "DELETE", path, token, nil, nil)
}

func (c *CourseClient) upsertSubSection(ctx context.Context, token, path, method string, in SubSectionInput) (*domain.Lesson, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"title":       in.Title,
		"description": in.Description,
	}
	files := map[string]Upload{}
	if in.Video != nil {
		files["video"] = *in.Video
	}
	var lesson domain.Lesson
	if err := c.doMultipart(ctx, method, path, token, fields, files, &lesson); err != nil {
		return nil, err
	}
	if lesson.ID == "" {
		return nil, fmt.Errorf("%w: sub-section without id", ErrBadResponse)
	}
	return &lesson, nil
}
