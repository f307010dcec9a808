package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"learnhub/internal/cache"
	"learnhub/internal/client"
	"learnhub/internal/domain"
)

// PlatformHandler fronts the smaller platform services: job postings,
// workshops, live classes and the chatbot lead form.
type PlatformHandler struct {
	catalog *client.CatalogClient
	cache   *cache.CatalogCache
}

func NewPlatformHandler(catalog *client.CatalogClient, cc *cache.CatalogCache) *PlatformHandler {
	return &PlatformHandler{catalog: catalog, cache: cc}
}

// GET /api/v1/jobs
func (h *PlatformHandler) Jobs(c *gin.Context) {
	var cached []domain.Job
	if h.cache.GetJobs(c, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	jobs, err := h.catalog.ListJobs(c)
	if err != nil {
		writeError(c, err)
		return
	}

	h.cache.SetJobs(c, jobs)
	c.JSON(http.StatusOK, jobs)
}

// GET /api/v1/jobs/:id
func (h *PlatformHandler) Job(c *gin.Context) {
	job, err := h.catalog.GetJob(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// GET /api/v1/workshops
func (h *PlatformHandler) Workshops(c *gin.Context) {
	ws, err := h.catalog.ListWorkshops(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

// GET /api/v1/workshops/:id
func (h *PlatformHandler) Workshop(c *gin.Context) {
	ws, err := h.catalog.GetWorkshop(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

// GET /api/v1/classes
func (h *PlatformHandler) Classes(c *gin.Context) {
	token := c.GetString("accessToken")

	classes, err := h.catalog.ListClasses(c, token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

// POST /api/v1/classes
func (h *PlatformHandler) ScheduleClass(c *gin.Context) {
	token := c.GetString("accessToken")

	var req domain.LiveClass
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CourseID == "" || req.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id and topic are required"})
		return
	}

	class, err := h.catalog.ScheduleClass(c, token, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

type leadReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// POST /api/v1/leads. The chatbot landing form, heavily rate limited in the
// router; the backend owns dedup.
func (h *PlatformHandler) CreateLead(c *gin.Context) {
	var req leadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead := domain.Lead{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Source:  req.Source,
	}
	if lead.Source == "" {
		lead.Source = "chatbot"
	}

	if err := h.catalog.CreateLead(c, lead); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thanks, we will reach out shortly"})
}

// GET /api/v1/leads. CRM view for instructors and admins; the backend
// enforces the role.
func (h *PlatformHandler) Leads(c *gin.Context) {
	token := c.GetString("accessToken")

	leads, err := h.catalog.ListLeads(c, token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}
