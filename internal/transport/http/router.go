package handlers

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"learnhub/internal/middleware"
	"learnhub/internal/security"
)

func NewRouter(
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	platformHandler *PlatformHandler,
	editorHandler *EditorHandler,
	limiter *middleware.RateLimiter,
	tokens *security.TokenManager,
	allowedOrigins string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = splitOrigins(allowedOrigins)
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	authRequired := middleware.AuthMiddleware(tokens)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/otp", limiter.Limit("otp", 3, 5*time.Minute), authHandler.SendOTP)
			auth.POST("/logout", authHandler.Logout)
		}
		api.GET("/profile", authRequired, authHandler.GetProfile)

		api.GET("/courses", catalogHandler.List)
		api.GET("/categories", catalogHandler.Categories)
		course := api.Group("/courses")
		course.Use(authRequired)
		{
			course.GET("/:id", catalogHandler.GetOne)
			course.POST("/:id/enroll", catalogHandler.Enroll)
		}

		api.GET("/jobs", platformHandler.Jobs)
		api.GET("/jobs/:id", platformHandler.Job)
		api.GET("/workshops", platformHandler.Workshops)
		api.GET("/workshops/:id", platformHandler.Workshop)
		api.GET("/classes", authRequired, platformHandler.Classes)
		api.POST("/classes", authRequired, platformHandler.ScheduleClass)
		api.POST("/leads", limiter.Limit("leads", 3, 5*time.Minute), platformHandler.CreateLead)
		api.GET("/leads", authRequired, platformHandler.Leads)

		ed := api.Group("/editor/sessions")
		ed.Use(authRequired)
		{
			ed.POST("", editorHandler.Start)
			ed.GET("/:id", editorHandler.State)
			ed.DELETE("/:id", editorHandler.Close)
			ed.POST("/:id/retreat", editorHandler.Retreat)
			ed.POST("/:id/skip", editorHandler.SkipToContent)
			ed.PUT("/:id/details", editorHandler.UpdateDetails)
			ed.POST("/:id/tags", editorHandler.AddTag)
			ed.DELETE("/:id/tags/:index", editorHandler.RemoveTag)
			ed.POST("/:id/instructions", editorHandler.AddInstruction)
			ed.DELETE("/:id/instructions/:index", editorHandler.RemoveInstruction)
			ed.POST("/:id/thumbnail", editorHandler.SetThumbnail)
			ed.POST("/:id/submit-details", editorHandler.SubmitDetails)
			ed.POST("/:id/sections", editorHandler.AddSection)
			ed.PUT("/:id/sections/:sectionId", editorHandler.RenameSection)
			ed.DELETE("/:id/sections/:sectionId", editorHandler.RemoveSection)
			ed.POST("/:id/sections/:sectionId/draft", editorHandler.StartDraft)
			ed.PUT("/:id/sections/:sectionId/draft", editorHandler.SetDraftFields)
			ed.DELETE("/:id/sections/:sectionId/draft", editorHandler.CancelEdit)
			ed.POST("/:id/sections/:sectionId/draft/video", editorHandler.SelectVideo)
			ed.DELETE("/:id/sections/:sectionId/draft/video", editorHandler.RemoveVideo)
			ed.POST("/:id/sections/:sectionId/draft/save", editorHandler.SaveDraft)
			ed.POST("/:id/sections/:sectionId/lessons/:index/edit", editorHandler.EditLesson)
			ed.DELETE("/:id/sections/:sectionId/lessons/:index", editorHandler.RemoveLesson)
			ed.POST("/:id/advance", editorHandler.AdvanceToStatus)
			ed.POST("/:id/submit-status", editorHandler.SubmitStatus)
			ed.GET("/:id/previews/:previewId", editorHandler.ServePreview)
		}
	}

	return r
}

func splitOrigins(origins string) []string {
	if origins == "" {
		return []string{"http://localhost:3000"}
	}
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
