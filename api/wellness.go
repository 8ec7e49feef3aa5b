package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
	"github.com/Yogesh-SS7/AibotforPCOD/services"
	"github.com/Yogesh-SS7/AibotforPCOD/utils"
)

// GetPrakritiQuestionsHandler lists the Prakriti quiz.
// GET /api/prakriti/questions
func (h *APIHandler) GetPrakritiQuestionsHandler(c *gin.Context) {
	questions, err := h.wellnessService.PrakritiQuestions(c.Request.Context())
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load Prakriti questions.", err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// PrakritiRequest is the body of a Prakriti quiz submission.
type PrakritiRequest struct {
	Answers []models.PrakritiAnswer `json:"answers"`
}

// SubmitPrakritiHandler scores a Prakriti quiz.
// POST /api/prakriti/submit
func (h *APIHandler) SubmitPrakritiHandler(c *gin.Context) {
	var req PrakritiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Answers array required", err)
		return
	}

	result, err := h.wellnessService.AssessPrakriti(c.Request.Context(), req.Answers)
	if err != nil {
		if errors.Is(err, services.ErrNoPrakritiAnswers) {
			utils.SendJSONError(c, http.StatusBadRequest, "Answers array required", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to calculate Prakriti.", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitJointPainHandler runs the joint pain screening.
// POST /api/diagnostic/joint-pain/submit
func (h *APIHandler) SubmitJointPainHandler(c *gin.Context) {
	var req SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	report, err := h.assessmentService.Diagnose(c.Request.Context(), req.Answers)
	if err != nil {
		if errors.Is(err, services.ErrNoAnswers) {
			utils.SendJSONError(c, http.StatusBadRequest, "No answers provided.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to process screening", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetYogaPosesHandler lists yoga poses.
// GET /api/yoga
func (h *APIHandler) GetYogaPosesHandler(c *gin.Context) {
	poses, err := h.wellnessService.YogaPoses(c.Request.Context())
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load yoga poses", err)
		return
	}
	c.JSON(http.StatusOK, poses)
}

// GetRemediesHandler lists home remedies.
// GET /api/remedies
func (h *APIHandler) GetRemediesHandler(c *gin.Context) {
	remedies, err := h.wellnessService.Remedies(c.Request.Context())
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load remedies", err)
		return
	}
	c.JSON(http.StatusOK, remedies)
}
