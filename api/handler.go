package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
	"github.com/Yogesh-SS7/AibotforPCOD/services"
	"github.com/Yogesh-SS7/AibotforPCOD/utils"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	assessmentService services.AssessmentService
	profileService    services.ProfileService
	chatService       services.ChatService
	wellnessService   services.WellnessService
	contextAssembler  *services.ContextAssembler
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	assessmentService services.AssessmentService,
	profileService services.ProfileService,
	chatService services.ChatService,
	wellnessService services.WellnessService,
	contextAssembler *services.ContextAssembler,
) *APIHandler {
	return &APIHandler{
		assessmentService: assessmentService,
		profileService:    profileService,
		chatService:       chatService,
		wellnessService:   wellnessService,
		contextAssembler:  contextAssembler,
	}
}

// RegisterRoutes mounts every endpoint under /api.
func (h *APIHandler) RegisterRoutes(r *gin.Engine) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/init", h.InitHandler)
		apiGroup.POST("/chat", h.ChatHandler)
		apiGroup.GET("/chat/history/:userID", h.ChatHistoryHandler)

		pcodGroup := apiGroup.Group("/pcod")
		{
			pcodGroup.GET("/questions", h.GetQuestionsHandler)
			pcodGroup.POST("/submit", h.SubmitAssessmentHandler)
		}

		prakritiGroup := apiGroup.Group("/prakriti")
		{
			prakritiGroup.GET("/questions", h.GetPrakritiQuestionsHandler)
			prakritiGroup.POST("/submit", h.SubmitPrakritiHandler)
		}

		jointPainGroup := apiGroup.Group("/diagnostic/joint-pain")
		{
			jointPainGroup.GET("/questions", h.GetQuestionsHandler)
			jointPainGroup.POST("/submit", h.SubmitJointPainHandler)
		}

		apiGroup.GET("/yoga", h.GetYogaPosesHandler)
		apiGroup.GET("/remedies", h.GetRemediesHandler)

		userGroup := apiGroup.Group("/users/:userID")
		{
			userGroup.GET("/profile", h.GetProfileHandler)
			userGroup.PUT("/profile", h.UpsertProfileHandler)
			userGroup.GET("/assessment", h.GetLatestAssessmentHandler)
		}

		apiGroup.POST("/admin/questionnaire/reload", h.ReloadQuestionnaireHandler)
	}
}

// InitHandler returns what a client needs on start-up: the questionnaire it
// will be asked and which of the user's profile and assessment already exist.
// GET /api/init?userID=
func (h *APIHandler) InitHandler(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Query("userID")

	questions, meta := h.assessmentService.ListQuestions(ctx)
	response := models.InitResponse{
		UserID:            userID,
		Questionnaire:     meta,
		QuestionCount:     len(questions),
		PreferredLanguage: models.DefaultLanguage,
	}

	if userID != "" {
		profile, err := h.profileService.Get(ctx, userID)
		if err != nil {
			zap.L().Warn("[API] Init: profile unavailable", zap.String("user_id", userID), zap.Error(err))
		} else if profile != nil {
			response.HasProfile = true
			response.HasBMI = profile.BMI > 0 && profile.BMICategory != ""
			if profile.Language != "" {
				response.PreferredLanguage = profile.Language
			}
		}

		latest, err := h.assessmentService.Latest(ctx, userID)
		if err != nil {
			zap.L().Warn("[API] Init: assessment unavailable", zap.String("user_id", userID), zap.Error(err))
		}
		response.HasAssessment = latest != nil
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "OK",
		"data":    response,
	})
}

// GetQuestionsHandler lists the questionnaire as a flat array.
// GET /api/pcod/questions
func (h *APIHandler) GetQuestionsHandler(c *gin.Context) {
	questions, _ := h.assessmentService.ListQuestions(c.Request.Context())
	c.JSON(http.StatusOK, questions)
}

// SubmitAssessmentRequest is the body of a questionnaire submission.
type SubmitAssessmentRequest struct {
	UserID  string           `json:"userId"`
	Answers models.AnswerSet `json:"answers"`
}

// SubmitAssessmentHandler scores a set of answers.
// POST /api/pcod/submit
func (h *APIHandler) SubmitAssessmentHandler(c *gin.Context) {
	var req SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	report, err := h.assessmentService.Submit(c.Request.Context(), req.UserID, req.Answers)
	if err != nil {
		if errors.Is(err, services.ErrNoAnswers) {
			utils.SendJSONError(c, http.StatusBadRequest, "No answers provided", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to process assessment", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetProfileHandler returns the stored profile of a user.
// GET /api/users/:userID/profile
func (h *APIHandler) GetProfileHandler(c *gin.Context) {
	userID := c.Param("userID")

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserIDRequired) {
			utils.SendJSONError(c, http.StatusBadRequest, "UserID parameter is required.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch profile.", err)
		return
	}
	if profile == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Profile not found.", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Profile retrieved successfully",
		"data":    profile,
	})
}

// UpsertProfileRequest is the editable part of a profile.
type UpsertProfileRequest struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	Phone    string  `json:"phone"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Language string  `json:"language"`
}

// UpsertProfileHandler creates or replaces a user's profile. BMI fields are
// always derived from weight and height.
// PUT /api/users/:userID/profile
func (h *APIHandler) UpsertProfileHandler(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	profile, err := h.profileService.Upsert(c.Request.Context(), &models.UserProfile{
		UserID:   c.Param("userID"),
		Name:     req.Name,
		Age:      req.Age,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Weight:   req.Weight,
		Height:   req.Height,
		Language: req.Language,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserIDRequired) {
			utils.SendJSONError(c, http.StatusBadRequest, "UserID parameter is required.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save profile.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Profile saved successfully",
		"data":    profile,
	})
}

// GetLatestAssessmentHandler returns the latest stored assessment of a user.
// GET /api/users/:userID/assessment
func (h *APIHandler) GetLatestAssessmentHandler(c *gin.Context) {
	record, err := h.assessmentService.Latest(c.Request.Context(), c.Param("userID"))
	if err != nil {
		if errors.Is(err, services.ErrUserIDRequired) {
			utils.SendJSONError(c, http.StatusBadRequest, "UserID parameter is required.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch assessment.", err)
		return
	}
	if record == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Assessment not found.", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Assessment retrieved successfully",
		"data":    record,
	})
}

// ReloadQuestionnaireHandler re-reads the question source.
// POST /api/admin/questionnaire/reload
func (h *APIHandler) ReloadQuestionnaireHandler(c *gin.Context) {
	n := h.assessmentService.Reload(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Questionnaire reloaded",
		"data":    gin.H{"question_count": n},
	})
}
