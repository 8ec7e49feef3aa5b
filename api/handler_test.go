package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Yogesh-SS7/AibotforPCOD/config"
	"github.com/Yogesh-SS7/AibotforPCOD/models"
	"github.com/Yogesh-SS7/AibotforPCOD/repository"
	"github.com/Yogesh-SS7/AibotforPCOD/services"
)

type fixedSource struct{}

func (fixedSource) Load(ctx context.Context) (models.SurveyMeta, []models.Section, error) {
	return models.SurveyMeta{Title: "PCOD Risk Screening", Version: "1"}, []models.Section{{
		SectionID: "demographics",
		Title:     "Demographics",
		Questions: []models.Question{
			{ID: "Q1", Text: "Age group", Type: models.QuestionTypeSingleChoice, Options: []models.Option{
				{Text: "Below 18", Score: 0}, {Text: "18-30", Score: 10},
			}},
			{ID: "Q2", Text: "Symptoms", Type: models.QuestionTypeMultiChoice, Options: []models.Option{
				{Text: "Fatigue", Score: 40}, {Text: "Acne", Score: 40},
			}},
		},
	}}, nil
}

type testEnv struct {
	router  *gin.Engine
	prompts chan string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserProfile{}, &models.AssessmentRecord{}, &models.ChatMessage{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	prompts := make(chan string, 4)
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) > 0 {
			prompts <- req.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Namaste"},
			}},
		})
	}))
	t.Cleanup(llm.Close)

	contentDir := t.TempDir()
	prakritiPath := filepath.Join(contentDir, "prakriti.json")
	require.NoError(t, os.WriteFile(prakritiPath, []byte(`[
		{"id": "1", "question": "Body frame?", "options": [{"text": "Thin", "type": "Vata"}, {"text": "Medium", "type": "Pitta"}]}
	]`), 0o644))
	remediesPath := filepath.Join(contentDir, "remedies.yaml")
	require.NoError(t, os.WriteFile(remediesPath, []byte("- id: r1\n  condition: Bloating\n  remedy: Jeera water\n  caution: None\n"), 0o644))
	content := repository.NewContentSource(prakritiPath, filepath.Join(contentDir, "yoga.json"), remediesPath)

	profileRepo := repository.NewProfileRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	chatRepo := repository.NewChatRepository(db)

	handler := NewAPIHandler(
		services.NewAssessmentService(assessmentRepo, services.NewCatalogLoader(fixedSource{})),
		services.NewProfileService(profileRepo),
		services.NewChatService(config.LLMConfig{BaseURL: llm.URL + "/v1", APIKey: "ollama", Model: "llama3.2", Timeout: 5 * time.Second}, chatRepo),
		services.NewWellnessService(content),
		services.NewContextAssembler(profileRepo, assessmentRepo),
	)
	r := gin.New()
	handler.RegisterRoutes(r)
	return &testEnv{router: r, prompts: prompts}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestGetQuestionsHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/pcod/questions", "")
	require.Equal(t, http.StatusOK, w.Code)

	var questions []models.Question
	decode(t, w, &questions)
	require.Len(t, questions, 2)
	assert.Equal(t, "Q1", questions[0].ID)
	assert.Equal(t, "Demographics", questions[0].Section)
}

func TestSubmitAssessmentHandler(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Scores and returns the report", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/pcod/submit", `{"answers": {"Q1": "18-30", "Q2": ["Fatigue", "Acne"]}}`)
		require.Equal(t, http.StatusOK, w.Code)

		var report models.AssessmentReport
		decode(t, w, &report)
		assert.Equal(t, 90, report.Score)
		assert.Equal(t, models.RiskVeryHigh, report.RiskCategory)
		assert.Equal(t, []string{}, report.ObservedPatterns)
		assert.Len(t, report.Recommendations, 3)
		assert.NotEmpty(t, report.Disclaimer)
	})

	t.Run("Missing answers is a bad request", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/pcod/submit", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No answers provided")
	})

	t.Run("Malformed body is a bad request", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/pcod/submit", `{"answers": "Q1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Submission with a user is stored as latest", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/pcod/submit", `{"userId": "u1", "answers": {"Q1": "18-30"}}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodGet, "/api/users/u1/assessment", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data models.AssessmentRecord `json:"data"`
		}
		decode(t, w, &resp)
		assert.Equal(t, 10, resp.Data.Score)
		assert.Equal(t, models.RiskLow, resp.Data.RiskCategory)
	})
}

func TestGetLatestAssessmentHandler_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/users/nobody/assessment", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileHandlers(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/users/u1/profile", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, "/api/users/u1/profile", `{"name": "Asha", "age": 24, "weight": 60, "height": 160, "language": "Hindi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/users/u1/profile", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data models.UserProfile `json:"data"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Asha", resp.Data.Name)
	assert.Equal(t, 23.4, resp.Data.BMI)
	assert.Equal(t, services.BMINormal, resp.Data.BMICategory)

	w = env.do(t, http.MethodPut, "/api/users/u1/profile", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInitHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/users/u1/profile", `{"name": "Asha", "language": "Hindi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/init?userID=u1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int                 `json:"code"`
		Data models.InitResponse `json:"data"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "PCOD Risk Screening", resp.Data.Questionnaire.Title)
	assert.Equal(t, 2, resp.Data.QuestionCount)
	assert.True(t, resp.Data.HasProfile)
	assert.False(t, resp.Data.HasBMI)
	assert.False(t, resp.Data.HasAssessment)
	assert.Equal(t, "Hindi", resp.Data.PreferredLanguage)
}

func TestChatHandler(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Message is required", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/chat", `{"userId": "u1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Message is required")
	})

	t.Run("Reply carries the stored context", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/pcod/submit", `{"userId": "u1", "answers": {"Q2": ["Fatigue", "Acne"]}}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodPost, "/api/chat", `{"userId": "u1", "message": "What should I eat?"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var reply map[string]interface{}
		decode(t, w, &reply)
		assert.Equal(t, "Namaste", reply["response"])
		assert.Equal(t, "AI", reply["sender"])
		assert.NotEmpty(t, reply["timestamp"])

		prompt := <-env.prompts
		assert.Contains(t, prompt, `"risk_category": "Very High Risk"`)

		w = env.do(t, http.MethodGet, "/api/chat/history/u1", "")
		require.Equal(t, http.StatusOK, w.Code)
		var history struct {
			Data []models.ChatMessage `json:"data"`
		}
		decode(t, w, &history)
		require.Len(t, history.Data, 2)
		assert.Equal(t, "What should I eat?", history.Data[0].Content)
		assert.Equal(t, "Namaste", history.Data[1].Content)
	})
}

func TestReloadQuestionnaireHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/questionnaire/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"question_count":2`)
}

func TestPrakritiHandlers(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/prakriti/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var questions []models.PrakritiQuestion
	decode(t, w, &questions)
	require.Len(t, questions, 1)
	assert.Equal(t, models.DoshaPitta, questions[0].Options[1].Type)

	w = env.do(t, http.MethodPost, "/api/prakriti/submit", `{"answers": [{"questionId": "1", "selectedType": "Pitta"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var result models.PrakritiResult
	decode(t, w, &result)
	assert.Equal(t, "Pitta", result.Prakriti)
	assert.Equal(t, 1, result.Counts[models.DoshaPitta])

	w = env.do(t, http.MethodPost, "/api/prakriti/submit", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Answers array required")

	w = env.do(t, http.MethodPost, "/api/prakriti/submit", `{"answers": "Pitta"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJointPainHandlers(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/diagnostic/joint-pain/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var questions []models.Question
	decode(t, w, &questions)
	assert.Len(t, questions, 2)

	w = env.do(t, http.MethodPost, "/api/diagnostic/joint-pain/submit", `{"answers": {"Q2": ["Fatigue"]}}`)
	require.Equal(t, http.StatusOK, w.Code)
	var report models.DiagnosticReport
	decode(t, w, &report)
	assert.Equal(t, "Risk Assessment: Moderate Risk", report.Result)
	assert.Equal(t, 40, report.Score)
	assert.Equal(t, services.DiagnosticDisclaimer, report.Disclaimer)

	w = env.do(t, http.MethodPost, "/api/diagnostic/joint-pain/submit", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No answers provided.")
}

func TestListingHandlers(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/yoga", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/remedies", "")
	require.Equal(t, http.StatusOK, w.Code)
	var remedies []models.Remedy
	decode(t, w, &remedies)
	require.Len(t, remedies, 1)
	assert.Equal(t, "Jeera water", remedies[0].Remedy)
}
