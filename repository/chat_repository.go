package repository

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// ChatRepository persists the conversation history of each user.
type ChatRepository interface {
	SaveMessage(ctx context.Context, message *models.ChatMessage) error
	GetMessagesByUserID(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a gorm backed ChatRepository.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// SaveMessage appends one message to the user's history.
func (r *chatRepository) SaveMessage(ctx context.Context, message *models.ChatMessage) error {
	if message.UserID == "" {
		return eris.New("user ID cannot be empty")
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return eris.Wrapf(err, "failed to save chat message for user %s", message.UserID)
	}
	zap.L().Debug("[ChatRepository] Saved message",
		zap.String("user_id", message.UserID),
		zap.Uint("id", message.ID),
		zap.String("role", message.Role),
	)
	return nil
}

// GetMessagesByUserID returns the user's most recent messages, oldest first.
// A limit of zero or less returns the whole history. No history is an empty
// slice, not an error.
func (r *chatRepository) GetMessagesByUserID(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []models.ChatMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, eris.Wrapf(err, "failed to fetch chat history for user %s", userID)
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
