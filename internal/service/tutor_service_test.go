package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/implementation"
	"ai-tutor-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tutorFixture struct {
	svc            ITutorService
	provider       *fakeLLM
	logRepo        contract.ConversationLogRepository
	reflectionRepo contract.ReflectionRepository
	profileRepo    contract.ProfileRepository
	db             *gorm.DB
}

func newTutorFixture(t *testing.T, audioDir string) *tutorFixture {
	t.Helper()
	db := newTestDB(t)
	logRepo := implementation.NewConversationLogRepository(db)
	reflectionRepo := implementation.NewReflectionRepository(db)
	profileRepo := implementation.NewProfileRepository(db)

	provider := &fakeLLM{replies: []string{"Nice work! Keep practicing."}}
	profileService := NewProfileService(profileRepo, memory.NewProfileCache(), nopLogger{})
	reflectionService := NewReflectionService(logRepo, reflectionRepo, provider, nopLogger{})

	svc := NewTutorService(
		TutorConfig{
			MaxWords:     300,
			AudioDir:     audioDir,
			BaseURL:      "https://tutor.example.com",
			VoiceName:    "en-US-Studio-O",
			LanguageCode: "en-US",
		},
		profileService,
		reflectionService,
		logRepo,
		provider,
		&fakeTranscriber{text: "How do I say hello?"},
		&fakeSynthesizer{},
		&fakeTranscoder{seconds: 1.2001},
		&fakeFetcher{content: "voice-bytes"},
		nil,
		nopLogger{},
	)

	return &tutorFixture{
		svc:            svc,
		provider:       provider,
		logRepo:        logRepo,
		reflectionRepo: reflectionRepo,
		profileRepo:    profileRepo,
		db:             db,
	}
}

func (f *tutorFixture) completeProfile(t *testing.T, userId string) {
	t.Helper()
	now := entity.Profile{
		UserId:     userId,
		Occupation: "engineer",
		Age:        "30",
		Need:       "business English",
		Completed:  true,
	}
	require.NoError(t, f.profileRepo.Create(context.Background(), &now))
}

func TestRespondToTextPersistsExchange(t *testing.T) {
	ctx := context.Background()
	fx := newTutorFixture(t, t.TempDir())
	fx.completeProfile(t, "U1")

	reply, err := fx.svc.RespondToText(ctx, "U1", "How are you?")
	require.NoError(t, err)
	assert.Equal(t, "Nice work! Keep practicing.", reply)

	logs, err := fx.logRepo.FindAllByUserId(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "student: How are you? | teacher: Nice work! Keep practicing.", logs[0].Log)

	// Profile attributes reach the system message.
	system := fx.provider.calls[0][0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "Occupation: engineer")
	assert.Contains(t, system.Content, "Age: 30")
	assert.Contains(t, system.Content, "Need: business English")
}

func TestReplyLengthIsInstructionOnly(t *testing.T) {
	ctx := context.Background()
	fx := newTutorFixture(t, t.TempDir())
	fx.completeProfile(t, "U1")

	_, err := fx.svc.RespondToText(ctx, "U1", "hello")
	require.NoError(t, err)

	// The word limit rides in the prompt text; no token cap goes to the model.
	assert.Zero(t, fx.provider.lastOpts.MaxTokens)
	assert.Contains(t, fx.provider.lastUserContent(), "Answer in <=300 words.")
}

func TestMemoryClauseOmittedWithoutReflections(t *testing.T) {
	ctx := context.Background()
	fx := newTutorFixture(t, t.TempDir())
	fx.completeProfile(t, "U1")

	_, err := fx.svc.RespondToText(ctx, "U1", "hello")
	require.NoError(t, err)

	user := fx.provider.lastUserContent()
	assert.NotContains(t, user, "record of what you have done")
	assert.Contains(t, user, `Student says: "hello"`)
	assert.Contains(t, user, "Answer in <=300 words.")
}

func TestMemoryWindowCapsAtFiveMostRecent(t *testing.T) {
	ctx := context.Background()
	fx := newTutorFixture(t, t.TempDir())
	fx.completeProfile(t, "U1")

	for i := 1; i <= 7; i++ {
		require.NoError(t, fx.reflectionRepo.Create(ctx, &entity.Reflection{
			UserId:  "U1",
			Reflect: fmt.Sprintf("memory-%d", i),
		}))
	}

	_, err := fx.svc.RespondToText(ctx, "U1", "hello")
	require.NoError(t, err)

	user := fx.provider.lastUserContent()
	assert.Contains(t, user, "record of what you have done")
	for i := 3; i <= 7; i++ {
		assert.Contains(t, user, fmt.Sprintf("memory-%d", i))
	}
	assert.NotContains(t, user, "memory-1")
	assert.NotContains(t, user, "memory-2")
}

func TestRespondToVoicePipeline(t *testing.T) {
	ctx := context.Background()
	audioDir := t.TempDir()
	fx := newTutorFixture(t, audioDir)
	fx.completeProfile(t, "U1")

	voiceReply, err := fx.svc.RespondToVoice(ctx, "U1", "msg-123")
	require.NoError(t, err)

	assert.Equal(t, "Nice work! Keep practicing.", voiceReply.Text)
	assert.Equal(t, int64(1201), voiceReply.DurationMs)

	// The published file lives under the audio dir and backs the URL.
	const urlPrefix = "https://tutor.example.com/audio/"
	require.True(t, len(voiceReply.AudioURL) > len(urlPrefix))
	name := voiceReply.AudioURL[len(urlPrefix):]
	_, statErr := os.Stat(filepath.Join(audioDir, name))
	assert.NoError(t, statErr)

	// The transcription, not the raw audio, is what gets logged.
	logs, err := fx.logRepo.FindAllByUserId(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Log, "student: How do I say hello?")
}

func TestVoiceTurnTriggersReflectionBeforeAppend(t *testing.T) {
	ctx := context.Background()
	fx := newTutorFixture(t, t.TempDir())
	fx.completeProfile(t, "U1")

	// Exactly ten prior entries: this turn consolidates them first.
	for i := 1; i <= 10; i++ {
		require.NoError(t, fx.logRepo.Create(ctx, &entity.ConversationLog{
			UserId: "U1",
			Log:    fmt.Sprintf("student: q%d | teacher: a%d", i, i),
		}))
	}

	fx.provider.replies = []string{"reflection text", "tutor reply"}

	voiceReply, err := fx.svc.RespondToVoice(ctx, "U1", "msg-1")
	require.NoError(t, err)
	assert.Equal(t, "tutor reply", voiceReply.Text)

	reflections, err := fx.reflectionRepo.FindAllByUserId(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, reflections, 1)
	assert.Equal(t, "reflection text", reflections[0].Reflect)

	// Reflection prompt saw the ten prior entries, not this turn's.
	first := fx.provider.calls[0]
	assert.Contains(t, first[1].Content, "student: q10 | teacher: a10")
	assert.NotContains(t, first[1].Content, "How do I say hello?")

	count, err := fx.logRepo.CountByUserId(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(11), count)
}
