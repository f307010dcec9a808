package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"learnhub/internal/editor"
)

// EditorHandler exposes the three-stage course editor. Every route resolves
// the session, checks it belongs to the caller, and maps one wizard
// operation onto it.
type EditorHandler struct {
	manager *editor.Manager
}

func NewEditorHandler(manager *editor.Manager) *EditorHandler {
	return &EditorHandler{manager: manager}
}

type sessionState struct {
	ID       string                        `json:"id"`
	CourseID string                        `json:"course_id"`
	Stage    int                           `json:"stage"`
	Progress float64                       `json:"progress"`
	Draft    editor.CourseDraft            `json:"draft"`
	Sections []editor.Section              `json:"sections"`
	Drafts   map[string]editor.LessonDraft `json:"lesson_drafts"`
}

func stateOf(s *editor.Session) sessionState {
	return sessionState{
		ID:       s.ID(),
		CourseID: s.CourseID(),
		Stage:    s.Stage(),
		Progress: s.Progress(),
		Draft:    s.Draft(),
		Sections: s.Sections(),
		Drafts:   s.Drafts(),
	}
}

func (h *EditorHandler) session(c *gin.Context) (*editor.Session, bool) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if s.Owner() != c.GetString("userId") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your editing session"})
		return nil, false
	}
	return s, true
}

// POST /api/v1/editor/sessions
func (h *EditorHandler) Start(c *gin.Context) {
	var req struct {
		CourseID string `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.manager.Start(c, identityFrom(c), req.CourseID)
	if err != nil {
		// A failed initial load is fatal for the editor view: the UI goes
		// back to the course list.
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stateOf(s))
}

// GET /api/v1/editor/sessions/:id
func (h *EditorHandler) State(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stateOf(s))
}

// DELETE /api/v1/editor/sessions/:id
func (h *EditorHandler) Close(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.manager.Close(s.ID())
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

// POST /api/v1/editor/sessions/:id/retreat
func (h *EditorHandler) Retreat(c *gin.Context) {
	h.simple(c, func(s *editor.Session) error { return s.Retreat() })
}

// POST /api/v1/editor/sessions/:id/skip
func (h *EditorHandler) SkipToContent(c *gin.Context) {
	h.simple(c, func(s *editor.Session) error { return s.SkipToContent() })
}

// PUT /api/v1/editor/sessions/:id/details
func (h *EditorHandler) UpdateDetails(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		CategoryID  string `json:"category_id"`
		Level       string `json:"level"`
		DurationHrs int    `json:"duration_hours"`
		Price       int    `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.simple(c, func(s *editor.Session) error {
		return s.UpdateDetails(req.Title, req.Description, req.CategoryID, req.Level, req.DurationHrs, req.Price)
	})
}

// POST /api/v1/editor/sessions/:id/tags
func (h *EditorHandler) AddTag(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.simple(c, func(s *editor.Session) error { return s.AddTag(req.Value) })
}

// DELETE /api/v1/editor/sessions/:id/tags/:index
func (h *EditorHandler) RemoveTag(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	h.simple(c, func(s *editor.Session) error { return s.RemoveTag(index) })
}

// POST /api/v1/editor/sessions/:id/instructions
func (h *EditorHandler) AddInstruction(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.simple(c, func(s *editor.Session) error { return s.AddInstruction(req.Value) })
}

// DELETE /api/v1/editor/sessions/:id/instructions/:index
func (h *EditorHandler) RemoveInstruction(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	h.simple(c, func(s *editor.Session) error { return s.RemoveInstruction(index) })
}

// POST /api/v1/editor/sessions/:id/thumbnail
func (h *EditorHandler) SetThumbnail(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thumbnail file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	if err := s.SetThumbnail(file.Filename, src); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateOf(s))
}

// POST /api/v1/editor/sessions/:id/submit-details
func (h *EditorHandler) SubmitDetails(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	res, err := s.SubmitDetails(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res, "state": stateOf(s)})
}

// POST /api/v1/editor/sessions/:id/sections
func (h *EditorHandler) AddSection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sec, err := s.AddSection(c, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sec)
}

// PUT /api/v1/editor/sessions/:id/sections/:sectionId
func (h *EditorHandler) RenameSection(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.simple(c, func(s *editor.Session) error {
		return s.RenameSection(c, c.Param("sectionId"), req.Name)
	})
}

// DELETE /api/v1/editor/sessions/:id/sections/:sectionId?confirm=true
func (h *EditorHandler) RemoveSection(c *gin.Context) {
	confirm := c.Query("confirm") == "true"
	h.simple(c, func(s *editor.Session) error {
		return s.RemoveSection(c, c.Param("sectionId"), confirm)
	})
}

// POST /api/v1/editor/sessions/:id/sections/:sectionId/draft
func (h *EditorHandler) StartDraft(c *gin.Context) {
	h.simple(c, func(s *editor.Session) error { return s.StartDraft(c.Param("sectionId")) })
}

// PUT /api/v1/editor/sessions/:id/sections/:sectionId/draft
func (h *EditorHandler) SetDraftFields(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.simple(c, func(s *editor.Session) error {
		return s.SetDraftFields(c.Param("sectionId"), req.Title, req.Description)
	})
}

// POST /api/v1/editor/sessions/:id/sections/:sectionId/draft/video
func (h *EditorHandler) SelectVideo(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	if err := s.SelectVideo(c.Param("sectionId"), file.Filename, file.Size, src); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateOf(s))
}

// DELETE /api/v1/editor/sessions/:id/sections/:sectionId/draft/video
func (h *EditorHandler) RemoveVideo(c *gin.Context) {
	h.simple(c, func(s *editor.Session) error { return s.RemoveVideoFromDraft(c.Param("sectionId")) })
}

// POST /api/v1/editor/sessions/:id/sections/:sectionId/draft/save
func (h *EditorHandler) SaveDraft(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	lesson, err := s.SaveDraft(c, c.Param("sectionId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// DELETE /api/v1/editor/sessions/:id/sections/:sectionId/draft
func (h *EditorHandler) CancelEdit(c *gin.Context) {
	h.simple(c, func(s *editor.Session) error { return s.CancelEdit(c.Param("sectionId")) })
}

// POST /api/v1/editor/sessions/:id/sections/:sectionId/lessons/:index/edit
func (h *EditorHandler) EditLesson(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	h.simple(c, func(s *editor.Session) error { return s.EditLesson(c.Param("sectionId"), index) })
}

// DELETE /api/v1/editor/sessions/:id/sections/:sectionId/lessons/:index?confirm=true
func (h *EditorHandler) RemoveLesson(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	confirm := c.Query("confirm") == "true"
	h.simple(c, func(s *editor.Session) error {
		return s.RemoveLesson(c, c.Param("sectionId"), index, confirm)
	})
}

// POST /api/v1/editor/sessions/:id/advance
func (h *EditorHandler) AdvanceToStatus(c *gin.Context) {
	h.simple(c, func(s *editor.Session) error { return s.AdvanceToStatus() })
}

// POST /api/v1/editor/sessions/:id/submit-status
func (h *EditorHandler) SubmitStatus(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.SubmitStatus(c, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	if res.Completed {
		h.manager.Close(s.ID())
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/v1/editor/sessions/:id/previews/:previewId
func (h *EditorHandler) ServePreview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	path, ok := s.PreviewPath(c.Param("previewId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "preview not found"})
		return
	}
	c.File(path)
}

func (h *EditorHandler) simple(c *gin.Context, fn func(*editor.Session) error) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := fn(s); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateOf(s))
}
