package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yogesh-SS7/AibotforPCOD/services"
	"github.com/Yogesh-SS7/AibotforPCOD/utils"
)

// ClientChatRequest is the body the app sends with each chat message.
type ClientChatRequest struct {
	Message string                 `json:"message"`
	UserID  string                 `json:"userId"`
	Context map[string]interface{} `json:"context"`
}

// ChatHandler answers one chat message. The assistant is always given the
// user's profile and latest assessment when they exist.
// POST /api/chat
func (h *APIHandler) ChatHandler(c *gin.Context) {
	var req ClientChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if req.Message == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Message is required", nil)
		return
	}

	ctx := c.Request.Context()
	zap.L().Info("[API] Received chat message", zap.String("user_id", req.UserID), zap.Int("length", len(req.Message)))

	chatCtx := h.contextAssembler.Assemble(ctx, req.UserID, req.Context)
	if chatCtx.IsEmpty() {
		zap.L().Debug("[API] Chat without any user context", zap.String("user_id", req.UserID))
	}
	reply := h.chatService.Chat(ctx, req.UserID, req.Message, chatCtx)

	c.JSON(http.StatusOK, gin.H{
		"response":  reply.Response,
		"sender":    reply.Sender,
		"timestamp": utils.FormatTime(reply.Timestamp),
	})
}

// ChatHistoryHandler returns a user's stored conversation.
// GET /api/chat/history/:userID
func (h *APIHandler) ChatHistoryHandler(c *gin.Context) {
	messages, err := h.chatService.History(c.Request.Context(), c.Param("userID"))
	if err != nil {
		if errors.Is(err, services.ErrUserIDRequired) {
			utils.SendJSONError(c, http.StatusBadRequest, "UserID parameter is required.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch chat history.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Chat history retrieved successfully",
		"data":    messages,
	})
}
