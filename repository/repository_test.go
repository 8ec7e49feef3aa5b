package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserProfile{}, &models.AssessmentRecord{}, &models.ChatMessage{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestAssessmentRepository_SaveLatestReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	repo := NewAssessmentRepository(newTestDB(t))

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.SaveLatest(ctx, &models.AssessmentRecord{
		UserID: "u1", RiskCategory: models.RiskLow, Score: 10, Answers: `{"Q1":"18-30"}`, Timestamp: first,
	}))
	require.NoError(t, repo.SaveLatest(ctx, &models.AssessmentRecord{
		UserID: "u1", RiskCategory: models.RiskVeryHigh, Score: 90, Answers: `{"Q2":["Fatigue","Acne"]}`, Timestamp: first.Add(time.Hour),
	}))

	got, err := repo.GetLatest(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 90, got.Score)
	assert.Equal(t, models.RiskVeryHigh, got.RiskCategory)
	assert.Equal(t, `{"Q2":["Fatigue","Acne"]}`, got.Answers)
	assert.True(t, got.Timestamp.Equal(first.Add(time.Hour)))
}

func TestAssessmentRepository_GetLatestMissing(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t))

	got, err := repo.GetLatest(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAssessmentRepository_RejectsEmptyUser(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t))
	assert.Error(t, repo.SaveLatest(context.Background(), &models.AssessmentRecord{Score: 1}))
}

func TestProfileRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(newTestDB(t))

	created, err := repo.UpsertProfile(ctx, &models.UserProfile{UserID: "u1", Name: "Asha", Age: 24, Language: "Hindi"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	updated, err := repo.UpsertProfile(ctx, &models.UserProfile{UserID: "u1", Name: "Asha", Age: 25, Weight: 60, Height: 160, Language: "Hindi"})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Age)
	assert.Equal(t, 60.0, updated.Weight)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	got, err := repo.GetProfile(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 25, got.Age)
	assert.Equal(t, "Hindi", got.Language)
}

func TestProfileRepository_GetMissing(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	got, err := repo.GetProfile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = repo.GetProfile(context.Background(), "")
	assert.Error(t, err)
}

func TestChatRepository_History(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(newTestDB(t))

	for i, content := range []string{"hi", "hello", "what is pcod?", "an explanation"} {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		require.NoError(t, repo.SaveMessage(ctx, &models.ChatMessage{UserID: "u1", Role: role, Content: content, Timestamp: time.Now()}))
	}
	require.NoError(t, repo.SaveMessage(ctx, &models.ChatMessage{UserID: "u2", Role: "user", Content: "other"}))

	all, err := repo.GetMessagesByUserID(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "hi", all[0].Content)
	assert.Equal(t, "an explanation", all[3].Content)

	recent, err := repo.GetMessagesByUserID(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "what is pcod?", recent[0].Content)
	assert.Equal(t, "an explanation", recent[1].Content)

	none, err := repo.GetMessagesByUserID(ctx, "u3", 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	assert.Error(t, repo.SaveMessage(ctx, &models.ChatMessage{Content: "no user"}))
}
