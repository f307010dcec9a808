package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"learnhub/internal/cache"
	"learnhub/internal/client"
	"learnhub/internal/domain"
)

type CatalogHandler struct {
	catalog *client.CatalogClient
	cache   *cache.CatalogCache
}

func NewCatalogHandler(catalog *client.CatalogClient, cc *cache.CatalogCache) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, cache: cc}
}

// GET /api/v1/courses
func (h *CatalogHandler) List(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	key := h.cache.CourseListKey(search, category, limit, offset)
	var cached client.CourseList
	if h.cache.GetCourseList(c, key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	list, err := h.catalog.ListCourses(c, search, category, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	h.cache.SetCourseList(c, key, list)
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/courses/:id. Full details with the caller's progress, so it
// is never cached.
func (h *CatalogHandler) GetOne(c *gin.Context) {
	token := c.GetString("accessToken")

	course, err := h.catalog.GetCourseDetails(c, token, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// GET /api/v1/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	var cached []domain.Category
	if h.cache.GetCategories(c, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	cats, err := h.catalog.ListCategories(c)
	if err != nil {
		writeError(c, err)
		return
	}

	h.cache.SetCategories(c, cats)
	c.JSON(http.StatusOK, cats)
}

// POST /api/v1/courses/:id/enroll
func (h *CatalogHandler) Enroll(c *gin.Context) {
	token := c.GetString("accessToken")

	if err := h.catalog.Enroll(c, token, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
