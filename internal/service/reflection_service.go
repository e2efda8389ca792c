package service

import (
	"context"
	"fmt"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/pkg/llm"
)

// IReflectionService consolidates conversation history into distilled memory
// records: every tenth resolved exchange, the last ten log entries are
// summarized by the model into one reflection.
type IReflectionService interface {
	// MaybeReflect runs the consolidation check for a user and returns
	// whether a new reflection was created. It must be called BEFORE the
	// current turn's log entry is appended.
	MaybeReflect(ctx context.Context, userId string) (bool, error)

	// RecentMemories returns the texts of up to n most recent reflections,
	// most recent first.
	RecentMemories(ctx context.Context, userId string, n int) ([]string, error)
}

type reflectionService struct {
	logRepo        contract.ConversationLogRepository
	reflectionRepo contract.ReflectionRepository
	llmProvider    llm.LLMProvider
	logger         logger.ILogger
}

func NewReflectionService(
	logRepo contract.ConversationLogRepository,
	reflectionRepo contract.ReflectionRepository,
	llmProvider llm.LLMProvider,
	sysLogger logger.ILogger,
) IReflectionService {
	return &reflectionService{
		logRepo:        logRepo,
		reflectionRepo: reflectionRepo,
		llmProvider:    llmProvider,
		logger:         sysLogger,
	}
}

func (s *reflectionService) MaybeReflect(ctx context.Context, userId string) (bool, error) {
	count, err := s.logRepo.CountByUserId(ctx, userId)
	if err != nil {
		return false, fmt.Errorf("count logs: %w", err)
	}
	if count == 0 || count%constant.ReflectEvery != 0 {
		return false, nil
	}

	block, err := s.logRepo.FindRecentByUserId(ctx, userId, constant.ReflectEvery)
	if err != nil {
		return false, fmt.Errorf("load recent logs: %w", err)
	}

	messages := buildReflectionMessages(block)
	reflection, err := s.llmProvider.Chat(ctx, messages)
	if err != nil {
		return false, fmt.Errorf("reflection completion: %w", err)
	}

	record := &entity.Reflection{
		UserId:  userId,
		Reflect: reflection,
	}
	if err := s.reflectionRepo.Create(ctx, record); err != nil {
		return false, fmt.Errorf("save reflection: %w", err)
	}

	s.logger.Info("reflection", "memory consolidated", map[string]interface{}{
		"user_id":   userId,
		"log_count": count,
	})
	return true, nil
}

func (s *reflectionService) RecentMemories(ctx context.Context, userId string, n int) ([]string, error) {
	reflections, err := s.reflectionRepo.FindRecentByUserId(ctx, userId, n)
	if err != nil {
		return nil, fmt.Errorf("load reflections: %w", err)
	}
	memories := make([]string, len(reflections))
	for i, r := range reflections {
		memories[i] = r.Reflect
	}
	return memories, nil
}
