package bootstrap

import (
	"context"
	"fmt"
	"os"

	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/controller"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/implementation"
	"ai-tutor-be/internal/repository/memory"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/line"
	"ai-tutor-be/pkg/llm/openai"
	"ai-tutor-be/pkg/media"
	"ai-tutor-be/pkg/speech"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController
	AdminController   controller.IAdminController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	SysLogger logger.ILogger
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	usageLogger := logger.NewIsolatedLogger("logs/usage.log")

	if err := os.MkdirAll(cfg.App.AudioDir, 0755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Repositories
	logRepo := implementation.NewConversationLogRepository(db)
	reflectionRepo := implementation.NewReflectionRepository(db)
	profileRepo := implementation.NewProfileRepository(db)
	profileCache := memory.NewProfileCache()

	// 4. External collaborators
	llmProvider := openai.NewOpenAIProvider(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.ChatModel,
		cfg.OpenAI.AudioModel,
	)

	synthesizer, err := speech.NewGoogleSpeech(ctx, cfg.Speech.CredentialsJSON, cfg.Speech.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("init speech synthesizer: %w", err)
	}

	lineClient := line.NewClient(cfg.Line.ChannelToken)
	transcoder := media.NewFFmpeg()

	// 5. Services
	profileService := service.NewProfileService(profileRepo, profileCache, sysLogger)
	reflectionService := service.NewReflectionService(logRepo, reflectionRepo, llmProvider, sysLogger)
	tutorService := service.NewTutorService(
		service.TutorConfig{
			MaxWords:     cfg.OpenAI.MaxTokens,
			AudioDir:     cfg.App.AudioDir,
			BaseURL:      cfg.App.BaseURL,
			VoiceName:    cfg.Speech.VoiceName,
			LanguageCode: cfg.Speech.LanguageCode,
		},
		profileService,
		reflectionService,
		logRepo,
		llmProvider,
		llmProvider,
		synthesizer,
		transcoder,
		lineClient,
		pubSub,
		sysLogger,
	)
	consumerService := service.NewConsumerService(pubSub, usageLogger)

	// 6. Controllers
	webhookController := controller.NewWebhookController(
		cfg.Line.ChannelSecret,
		profileService,
		tutorService,
		lineClient,
		service.NewUserLock(),
		sysLogger,
	)
	adminController := controller.NewAdminController(sysLogger)

	return &Container{
		WebhookController: webhookController,
		AdminController:   adminController,
		ConsumerService:   consumerService,
		SysLogger:         sysLogger,
	}, nil
}
