package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"syscall"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Yogesh-SS7/AibotforPCOD/config"
	"github.com/Yogesh-SS7/AibotforPCOD/models"
	"github.com/Yogesh-SS7/AibotforPCOD/repository"
)

// Fallback replies used when the language model cannot answer.
const (
	OfflineReply    = "I am currently unable to connect to my Ayurvedic knowledge base (Ollama is offline). Please try again later."
	DisruptionReply = "I encountered a gentle disruption in my thoughts. Please ask again."
)

// AssistantSender labels replies produced by the assistant.
const AssistantSender = "AI"

const historyLimit = 10

const systemPrompt = `You are "Ritu AI", a specialized Health Chatbot for women.
Tone: Warm, empathetic, knowledgeable, and patient (like a "Sakhi" or sister-friend).
Context: You are helping women manage Polycystic Ovary Syndrome (PCOD/PCOS) using Ayurvedic principles, diet, and lifestyle changes.

Rules:
1. Identify yourself as "Ritu AI" if asked.
2. Focus on PCOD-specific advice: balancing Hormones, Insulin Resistance, and Gut Health.
3. Use Ayurvedic concepts (Vata, Pitta, Kapha) but explain them simply.
4. NEVER diagnose a medical condition.
5. NEVER prescribe pharmaceutical drugs or claim to cure PCOD.
6. Use encouraging language. PCOD is manageable with lifestyle.
7. If symptoms are severe (severe pain, heavy bleeding), advise seeing a doctor immediately.

CRITICAL INSTRUCTION:
Check the provided USER CONTEXT.
- If 'bmi' or 'bmi_category' is MISSING in userProfile, kindly request the user to use the "BMI Calculator" in the app to better tailor advice.
- If 'pcodAssessment' is MISSING, kindly request the user to take the "PCOD Symptom Check" in the app.
- Answer the user's question first, then add these requests as a footer/suggestion if data is missing.`

// ChatService answers user messages with the configured language model.
type ChatService interface {
	Chat(ctx context.Context, userID, message string, chatCtx *models.ChatContext) *models.ChatReply
	History(ctx context.Context, userID string) ([]models.ChatMessage, error)
}

type chatService struct {
	client *openai.Client
	model  string
	repo   repository.ChatRepository
	now    func() time.Time
}

// NewChatService creates a ChatService talking to an OpenAI-compatible
// endpoint such as Ollama's /v1 API.
func NewChatService(cfg config.LLMConfig, repo repository.ChatRepository) ChatService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &chatService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		repo:   repo,
		now:    time.Now,
	}
}

// Chat never fails: when the model is unreachable the reply carries a
// fallback message instead.
func (s *chatService) Chat(ctx context.Context, userID, message string, chatCtx *models.ChatContext) *models.ChatReply {
	var history []models.ChatMessage
	if userID != "" {
		var err error
		history, err = s.repo.GetMessagesByUserID(ctx, userID, historyLimit)
		if err != nil {
			zap.L().Warn("[ChatService] Chat history unavailable", zap.String("user_id", userID), zap.Error(err))
		}
	}

	s.persist(ctx, userID, openai.ChatMessageRoleUser, message)

	reply, err := s.complete(ctx, buildMessages(chatCtx, history, message))
	if err != nil {
		reply = fallbackReply(err)
		zap.L().Error("[ChatService] Chat completion failed", zap.String("model", s.model), zap.Error(err))
	} else {
		s.persist(ctx, userID, openai.ChatMessageRoleAssistant, reply)
	}

	return &models.ChatReply{
		Response:  reply,
		Sender:    AssistantSender,
		Timestamp: s.now().UTC(),
	}
}

func (s *chatService) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	zap.L().Debug("[ChatService] Sending chat completion", zap.String("model", s.model), zap.Int("messages", len(messages)))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *chatService) persist(ctx context.Context, userID, role, content string) {
	if userID == "" {
		return
	}
	msg := &models.ChatMessage{UserID: userID, Role: role, Content: content, Timestamp: s.now().UTC()}
	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		zap.L().Warn("[ChatService] Failed to save chat message", zap.String("user_id", userID), zap.String("role", role), zap.Error(err))
	}
}

// History returns the user's stored conversation, oldest first.
func (s *chatService) History(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.repo.GetMessagesByUserID(ctx, userID, 0)
}

// buildMessages assembles the system prompt, recent history and the new
// user message.
func buildMessages(chatCtx *models.ChatContext, history []models.ChatMessage, message string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: BuildSystemPrompt(chatCtx),
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if strings.EqualFold(msg.Role, openai.ChatMessageRoleAssistant) {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
}

// BuildSystemPrompt renders the assistant persona followed by the user
// context and, when needed, the reply language instruction.
func BuildSystemPrompt(chatCtx *models.ChatContext) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	if chatCtx == nil {
		return b.String()
	}

	encoded, err := json.MarshalIndent(chatCtx.AsMap(), "", "  ")
	if err != nil {
		zap.L().Warn("[ChatService] Could not encode user context", zap.Error(err))
		encoded = []byte("{}")
	}
	b.WriteString("\n\nUSER CONTEXT:\n")
	b.Write(encoded)
	b.WriteString("\nUse this context to personalize your advice.")

	if chatCtx.RespondInLanguage {
		b.WriteString("\n\nIMPORTANT: The user speaks ")
		b.WriteString(chatCtx.Language)
		b.WriteString(". Please respond in ")
		b.WriteString(chatCtx.Language)
		b.WriteString(" (or Hinglish if appropriate for Hindi).")
	}
	return b.String()
}

func fallbackReply(err error) string {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return OfflineReply
	}
	return DisruptionReply
}
