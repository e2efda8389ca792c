package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/pkg/events"
	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/media"
	"ai-tutor-be/pkg/speech"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// AudioContentFetcher downloads the binary content of a received message.
// Satisfied by the LINE client.
type AudioContentFetcher interface {
	GetMessageContent(ctx context.Context, messageId string) (io.ReadCloser, error)
}

// VoiceReply is the result of an audio-originated turn: the reply text plus
// the synthesized audio to send alongside it.
type VoiceReply struct {
	Text       string
	AudioURL   string
	DurationMs int64
}

// ITutorService orchestrates one tutoring turn: prompt assembly, completion,
// persistence and (for voice turns) the speech pipeline.
type ITutorService interface {
	RespondToText(ctx context.Context, userId, studentText string) (string, error)
	RespondToVoice(ctx context.Context, userId, messageId string) (*VoiceReply, error)
}

type TutorConfig struct {
	MaxWords     int
	AudioDir     string
	BaseURL      string
	VoiceName    string
	LanguageCode string
}

type tutorService struct {
	cfg TutorConfig

	profileService    IProfileService
	reflectionService IReflectionService
	logRepo           contract.ConversationLogRepository

	llmProvider llm.LLMProvider
	transcriber llm.Transcriber
	synthesizer speech.Synthesizer
	transcoder  media.Transcoder
	fetcher     AudioContentFetcher

	publisher message.Publisher
	logger    logger.ILogger
}

func NewTutorService(
	cfg TutorConfig,
	profileService IProfileService,
	reflectionService IReflectionService,
	logRepo contract.ConversationLogRepository,
	llmProvider llm.LLMProvider,
	transcriber llm.Transcriber,
	synthesizer speech.Synthesizer,
	transcoder media.Transcoder,
	fetcher AudioContentFetcher,
	publisher message.Publisher,
	sysLogger logger.ILogger,
) ITutorService {
	return &tutorService{
		cfg:               cfg,
		profileService:    profileService,
		reflectionService: reflectionService,
		logRepo:           logRepo,
		llmProvider:       llmProvider,
		transcriber:       transcriber,
		synthesizer:       synthesizer,
		transcoder:        transcoder,
		fetcher:           fetcher,
		publisher:         publisher,
		logger:            sysLogger,
	}
}

func (s *tutorService) RespondToText(ctx context.Context, userId, studentText string) (string, error) {
	reply, err := s.respond(ctx, userId, studentText)
	if err != nil {
		return "", err
	}
	s.publish(events.NewTurnCompleted(userId, false))
	return reply, nil
}

func (s *tutorService) RespondToVoice(ctx context.Context, userId, messageId string) (*VoiceReply, error) {
	// 1. Download the voice message to a temp file.
	inPath := filepath.Join(os.TempDir(), uuid.NewString()+".m4a")
	if err := s.downloadContent(ctx, messageId, inPath); err != nil {
		return nil, err
	}
	defer os.Remove(inPath)

	// 2. Transcribe.
	studentText, err := s.transcriber.Transcribe(ctx, inPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	// 3. Periodic reflection, evaluated against the log count BEFORE this
	// turn's entry is appended.
	created, err := s.reflectionService.MaybeReflect(ctx, userId)
	if err != nil {
		return nil, err
	}
	if created {
		s.publish(events.NewReflectionCreated(userId))
	}

	// 4. Generate and persist the reply.
	reply, err := s.respond(ctx, userId, studentText)
	if err != nil {
		return nil, err
	}

	// 5. Synthesize speech to a temp MP3, transcode to AAC for delivery.
	tmpMp3 := filepath.Join(os.TempDir(), uuid.NewString()+".mp3")
	if err := s.synthesizer.Synthesize(ctx, reply, s.cfg.VoiceName, s.cfg.LanguageCode, tmpMp3); err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	defer os.Remove(tmpMp3)

	outName := uuid.NewString() + ".m4a"
	outPath := filepath.Join(s.cfg.AudioDir, outName)
	if err := s.transcoder.ConvertToAAC(ctx, tmpMp3, outPath); err != nil {
		return nil, fmt.Errorf("transcode: %w", err)
	}

	seconds, err := s.transcoder.Duration(ctx, tmpMp3)
	if err != nil {
		return nil, fmt.Errorf("probe duration: %w", err)
	}

	s.publish(events.NewTurnCompleted(userId, true))

	return &VoiceReply{
		Text:       reply,
		AudioURL:   s.cfg.BaseURL + "/audio/" + outName,
		DurationMs: media.DurationMillis(seconds),
	}, nil
}

// respond runs the shared turn core: profile + memories -> prompt ->
// completion -> log append.
func (s *tutorService) respond(ctx context.Context, userId, studentText string) (string, error) {
	profile, err := s.profileService.Get(ctx, userId)
	if err != nil {
		return "", err
	}

	memories, err := s.reflectionService.RecentMemories(ctx, userId, constant.MemoryWindow)
	if err != nil {
		return "", err
	}

	// Length is governed by the prompt instruction alone; a hard token cap
	// would cut replies mid-sentence.
	messages := buildChatMessages(profile, studentText, memories, s.cfg.MaxWords)
	reply, err := s.llmProvider.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	record := &entity.ConversationLog{
		UserId: userId,
		Log:    formatLogEntry(studentText, reply),
	}
	if err := s.logRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("save log entry: %w", err)
	}

	return reply, nil
}

func (s *tutorService) downloadContent(ctx context.Context, messageId, path string) error {
	content, err := s.fetcher.GetMessageContent(ctx, messageId)
	if err != nil {
		return fmt.Errorf("fetch message content: %w", err)
	}
	defer content.Close()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	return nil
}

// publish is best-effort: the event bus feeds operational accounting only and
// must never fail a turn.
func (s *tutorService) publish(evt events.Event) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":        evt.EventType(),
		"data":        evt.Payload(),
		"occurred_at": evt.Timestamp(),
	})
	if err != nil {
		return
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	if err := s.publisher.Publish(constant.TopicTurnEvents, msg); err != nil {
		s.logger.Warn("tutor", "failed to publish turn event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
