package client

import (
	"context"
	"fmt"
	"net/url"

	"learnhub/internal/domain"
)

// CatalogClient covers the learner-facing read surface plus the smaller
// platform services (jobs, workshops, live classes, leads) that share a host.
type CatalogClient struct {
	backend
}

func NewCatalogClient(url string) *CatalogClient {
	return &CatalogClient{backend: newBackend(url)}
}

type CourseList struct {
	Courses []domain.CourseSummary `json:"courses"`
	Total   int64                  `json:"total"`
}

func (c *CatalogClient) ListCourses(ctx context.Context, search, category string, limit, offset int) (*CourseList, error) {
	q := url.Values{}
	q.Set("search", search)
	q.Set("category", category)
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	var list CourseList
	if err := c.doJSON(ctx, "GET", "/catalog/courses?"+q.Encode(), "", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetCourseDetails returns the full course with the caller's progress folded in.
func (c *CatalogClient) GetCourseDetails(ctx context.Context, token, courseID string) (*domain.Course, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var course domain.Course
	if err := c.doJSON(ctx, "GET", "/catalog/courses/"+courseID, token, nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CatalogClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.doJSON(ctx, "GET", "/catalog/categories", "", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *CatalogClient) Enroll(ctx context.Context, token, courseID string) error {
	if err := requireToken(token); err != nil {
		return err
	}
	return c.doJSON(ctx, "POST", "/catalog/courses/"+courseID+"/enroll", token, nil, nil)
}

func (c *CatalogClient) ListJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.doJSON(ctx, "GET", "/jobs", "", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *CatalogClient) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	var job domain.Job
	if err := c.doJSON(ctx, "GET", "/jobs/"+jobID, "", nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *CatalogClient) ListWorkshops(ctx context.Context) ([]domain.Workshop, error) {
	var ws []domain.Workshop
	if err := c.doJSON(ctx, "GET", "/workshops", "", nil, &ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (c *CatalogClient) GetWorkshop(ctx context.Context, workshopID string) (*domain.Workshop, error) {
	var ws domain.Workshop
	if err := c.doJSON(ctx, "GET", "/workshops/"+workshopID, "", nil, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (c *CatalogClient) ListClasses(ctx context.Context, token string) ([]domain.LiveClass, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var classes []domain.LiveClass
	if err := c.doJSON(ctx, "GET", "/classes", token, nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (c *CatalogClient) ScheduleClass(ctx context.Context, token string, class domain.LiveClass) (*domain.LiveClass, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var out domain.LiveClass
	if err := c.doJSON(ctx, "POST", "/classes", token, class, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: scheduled class without id", ErrBadResponse)
	}
	return &out, nil
}

func (c *CatalogClient) CreateLead(ctx context.Context, lead domain.Lead) error {
	return c.doJSON(ctx, "POST", "/leads", "", lead, nil)
}

func (c *CatalogClient) ListLeads(ctx context.Context, token string) ([]domain.Lead, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var leads []domain.Lead
	if err := c.doJSON(ctx, "GET", "/leads", token, nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}
