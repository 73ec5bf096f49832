// Package api exposes the Sclera HTTP surface: record writes that fire the
// aggregation triggers, summary reads, and the tour completion endpoint.
package api

import "github.com/gin-gonic/gin"

// SetupRouter configures the API routes for the application.
func SetupRouter(router *gin.Engine, h *Handlers) {
	api := router.Group("/api")
	{
		api.GET("/healthz", h.Health)
		api.POST("/tutorial/complete", h.TutorialComplete)

		users := api.Group("/users")
		{
			users.POST("", h.CreateUser)
			users.GET("/:id", h.GetUser)
			users.POST("/:id/exam_results", h.CreateExamResult)
			users.POST("/:id/study_sessions", h.WriteStudySession)
			users.PUT("/:id/study_sessions/:sid", h.WriteStudySession)
		}

		classes := api.Group("/classes")
		{
			classes.GET("/:id/summary", h.GetClassSummary)
		}
	}
}
