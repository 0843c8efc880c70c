package api

import (
	"errors"
	"net/http"

	"github.com/ewenharris/setbook-server/internal/models"
	"github.com/ewenharris/setbook-server/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler holds the dependencies for the API handlers
type Handler struct {
	service     service.Service
	authLimiter *RateLimiter
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service, authLimiter *RateLimiter) *Handler {
	return &Handler{
		service:     svc,
		authLimiter: authLimiter,
	}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/api/health", h.Health)

	// Authentication routes are public but rate limited per client IP
	auth := router.Group("/api/auth")
	auth.Use(h.authLimiter.Middleware())
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
	}

	// Everything else requires a valid JWT
	authorized := router.Group("/api")
	authorized.Use(AuthMiddleware())
	{
		authorized.GET("/me", h.GetProfile)

		authorized.POST("/productions", h.CreateProduction)
		authorized.GET("/productions", h.ListProductions)
		authorized.DELETE("/productions/:id", h.DeleteProduction)

		authorized.POST("/productions/:id/crew", h.AddCrewMember)
		authorized.GET("/productions/:id/crew", h.ListCrew)

		authorized.PUT("/productions/:id/ratecard", h.UpsertRateCard)
		authorized.GET("/productions/:id/ratecard", h.GetRateCard)

		authorized.PUT("/productions/:id/timesheet/day/:date", h.UpsertTimesheetEntry)
		authorized.GET("/productions/:id/timesheet/day/:date", h.GetTimesheetDay)
		authorized.GET("/productions/:id/timesheet/week/:start", h.GetWeekSummary)
	}
}

// Health reports whether the server is up
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// SignUp handles user registration
func (h *Handler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles user authentication and issues a JWT
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProfile returns the authenticated user's own record
func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetString("userId")
	resp, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateProduction creates a new production with the caller as crew
func (h *Handler) CreateProduction(c *gin.Context) {
	var req models.CreateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID := c.GetString("userId")
	resp, err := h.service.CreateProduction(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListProductions returns all productions the caller belongs to
func (h *Handler) ListProductions(c *gin.Context) {
	userID := c.GetString("userId")
	resp, err := h.service.ListProductions(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteProduction deletes a production and all its data
func (h *Handler) DeleteProduction(c *gin.Context) {
	userID := c.GetString("userId")
	productionID := c.Param("id")

	if err := h.service.DeleteProduction(c.Request.Context(), userID, productionID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Production deleted successfully",
	})
}

// AddCrewMember adds a user to a production's crew by email
func (h *Handler) AddCrewMember(c *gin.Context) {
	var req models.AddCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID := c.GetString("userId")
	productionID := c.Param("id")

	resp, err := h.service.AddCrewMember(c.Request.Context(), userID, productionID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListCrew returns everyone on a production's crew
func (h *Handler) ListCrew(c *gin.Context) {
	userID := c.GetString("userId")
	productionID := c.Param("id")

	resp, err := h.service.ListCrew(c.Request.Context(), userID, productionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpsertRateCard creates or replaces the caller's rate card on a production
func (h *Handler) UpsertRateCard(c *gin.Context) {
	var req models.RateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID := c.GetString("userId")
	productionID := c.Param("id")

	resp, err := h.service.UpsertRateCard(c.Request.Context(), userID, productionID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRateCard returns the caller's rate card on a production
func (h *Handler) GetRateCard(c *gin.Context) {
	userID := c.GetString("userId")
	productionID := c.Param("id")

	resp, err := h.service.GetRateCard(c.Request.Context(), userID, productionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpsertTimesheetEntry records a day's times and returns the calculated pay
func (h *Handler) UpsertTimesheetEntry(c *gin.Context) {
	var req models.TimesheetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID := c.GetString("userId")
	productionID := c.Param("id")
	date := c.Param("date")

	resp, err := h.service.UpsertTimesheetEntry(c.Request.Context(), userID, productionID, date, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTimesheetDay returns a recorded day with its calculation
func (h *Handler) GetTimesheetDay(c *gin.Context) {
	userID := c.GetString("userId")
	productionID := c.Param("id")
	date := c.Param("date")

	resp, err := h.service.GetTimesheetDay(c.Request.Context(), userID, productionID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetWeekSummary returns the aggregated week starting at the given date
func (h *Handler) GetWeekSummary(c *gin.Context) {
	userID := c.GetString("userId")
	productionID := c.Param("id")
	weekStart := c.Param("start")

	resp, err := h.service.GetWeekSummary(c.Request.Context(), userID, productionID, weekStart)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// respondBindingError reports a request that failed validation
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "INVALID_REQUEST",
		Message: err.Error(),
	})
}

// respondServiceError maps service errors to HTTP status codes
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status:  "error",
			Code:    "UNAUTHORIZED",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status:  "error",
			Code:    "EMAIL_TAKEN",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrReadAccessDenied),
		errors.Is(err, service.ErrWriteAccessDenied),
		errors.Is(err, service.ErrNotCreator):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Status:  "error",
			Code:    "FORBIDDEN",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrProductionNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrNoRateCard):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status:  "error",
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
		})
	}
}
