package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sclera-app/sclera/internal/aggregate"
	"github.com/sclera-app/sclera/internal/db"
	"github.com/sclera-app/sclera/internal/logging"
	"github.com/sclera-app/sclera/internal/models"
)

// Handlers bundles the repositories and the trigger dispatcher behind the
// HTTP surface.
type Handlers struct {
	users      *db.UserRepository
	summaries  *db.SummaryRepository
	tourEvents *db.TourEventRepository
	dispatcher *aggregate.Dispatcher
	logger     zerolog.Logger
}

// NewHandlers creates the API handler set.
func NewHandlers(users *db.UserRepository, summaries *db.SummaryRepository, tourEvents *db.TourEventRepository, dispatcher *aggregate.Dispatcher) *Handlers {
	return &Handlers{
		users:      users,
		summaries:  summaries,
		tourEvents: tourEvents,
		dispatcher: dispatcher,
		logger:     logging.Component("api"),
	}
}

// Health handles GET /api/healthz.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type tutorialCompleteRequest struct {
	Completed bool   `json:"completed"`
	UserID    string `json:"user_id,omitempty"`
}

// TutorialComplete handles POST /api/tutorial/complete. The client treats
// this call as fire-and-forget; the server records an event row.
func (h *Handlers) TutorialComplete(c *gin.Context) {
	var req tutorialCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !req.Completed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be true"})
		return
	}

	event := &models.TourEvent{Type: models.TourEventCompleted, UserID: req.UserID}
	if err := h.tourEvents.Create(c.Request.Context(), event); err != nil {
		h.logger.Error().Err(err).Msg("failed to record tour completion")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record completion"})
		return
	}

	c.Status(http.StatusNoContent)
}

type createUserRequest struct {
	Name        string   `json:"name" binding:"required"`
	AccountType string   `json:"account_type,omitempty"`
	ClassIDs    []string `json:"class_ids,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
}

// CreateUser handles POST /api/users.
func (h *Handlers) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := &models.User{
		Name:        req.Name,
		AccountType: models.AccountType(req.AccountType),
		ClassIDs:    req.ClassIDs,
		Timezone:    req.Timezone,
	}
	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		h.logger.Error().Err(err).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser handles GET /api/users/:id.
func (h *Handlers) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if errors.Is(err, db.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type createExamResultRequest struct {
	Subject    string  `json:"subject,omitempty"`
	Percentage float64 `json:"percentage"`
}

// CreateExamResult handles POST /api/users/:id/exam_results. The write
// fires the result-created trigger; trigger failures never fail the write.
func (h *Handlers) CreateExamResult(c *gin.Context) {
	var req createExamResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := &models.ExamResult{
		UserID:     c.Param("id"),
		Subject:    req.Subject,
		Percentage: req.Percentage,
	}
	if err := h.users.CreateExamResult(c.Request.Context(), result); err != nil {
		h.logger.Error().Err(err).Msg("failed to create exam result")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create exam result"})
		return
	}

	h.dispatcher.ResultCreated(c.Request.Context(), result)

	c.JSON(http.StatusCreated, result)
}

type writeStudySessionRequest struct {
	Subject         string `json:"subject,omitempty"`
	DurationMinutes int64  `json:"duration_minutes"`
}

// WriteStudySession handles POST /api/users/:id/study_sessions and
// PUT /api/users/:id/study_sessions/:sid. Both fire the session trigger.
func (h *Handlers) WriteStudySession(c *gin.Context) {
	var req writeStudySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session := &models.StudySession{
		ID:              c.Param("sid"),
		UserID:          c.Param("id"),
		Subject:         req.Subject,
		DurationMinutes: req.DurationMinutes,
	}
	created := session.ID == ""
	if err := h.users.UpsertStudySession(c.Request.Context(), session); err != nil {
		h.logger.Error().Err(err).Msg("failed to write study session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write study session"})
		return
	}

	h.dispatcher.SessionWritten(c.Request.Context(), session)

	if created {
		c.JSON(http.StatusCreated, session)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetClassSummary handles GET /api/classes/:id/summary.
func (h *Handlers) GetClassSummary(c *gin.Context) {
	summary, err := h.summaries.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, db.ErrSummaryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "class summary not found"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read class summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read class summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
