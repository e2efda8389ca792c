package controller

import (
	"context"
	"strings"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/pkg/serverutils"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/line"

	"github.com/gofiber/fiber/v2"
)

const genericErrorReply = "Sorry, something went wrong. Please try again."

// Replier dispatches outbound messages on the chat platform. Satisfied by
// the LINE client.
type Replier interface {
	ReplyText(ctx context.Context, replyToken, text string) error
	ReplyAudio(ctx context.Context, replyToken, audioURL string, durationMs int64, text string) error
}

type IWebhookController interface {
	RegisterRoutes(app *fiber.App)
	Callback(ctx *fiber.Ctx) error
	Home(ctx *fiber.Ctx) error
}

type webhookController struct {
	channelSecret  string
	profileService service.IProfileService
	tutorService   service.ITutorService
	replier        Replier
	userLock       *service.UserLock
	logger         logger.ILogger
}

func NewWebhookController(
	channelSecret string,
	profileService service.IProfileService,
	tutorService service.ITutorService,
	replier Replier,
	userLock *service.UserLock,
	sysLogger logger.ILogger,
) IWebhookController {
	return &webhookController{
		channelSecret:  channelSecret,
		profileService: profileService,
		tutorService:   tutorService,
		replier:        replier,
		userLock:       userLock,
		logger:         sysLogger,
	}
}

func (c *webhookController) RegisterRoutes(app *fiber.App) {
	app.Post("/callback", c.Callback)
	app.Get("/", c.Home)
}

func (c *webhookController) Home(ctx *fiber.Ctx) error {
	return ctx.SendString("Hello World!")
}

// Callback is the single ingress boundary: signature check, event dispatch,
// and the top-level error catch. Once the signature validates, the response
// is 200 "OK" regardless of downstream outcome; failures are logged and
// answered with a best-effort generic reply.
func (c *webhookController) Callback(ctx *fiber.Ctx) error {
	body := ctx.Body()
	signature := ctx.Get("X-Line-Signature")
	if !line.ValidateSignature(c.channelSecret, body, signature) {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			serverutils.ErrorResponse("Invalid signature"))
	}

	req, err := line.ParseWebhookRequest(body)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			serverutils.ErrorResponse("Malformed payload"))
	}

	for _, event := range req.Events {
		c.handleEvent(ctx.Context(), event)
	}

	return ctx.SendString("OK")
}

func (c *webhookController) handleEvent(ctx context.Context, event line.Event) {
	if event.Type != line.EventTypeMessage {
		return
	}
	userId := event.Source.UserId

	c.userLock.Lock(userId)
	defer c.userLock.Unlock(userId)

	var err error
	switch event.Message.Type {
	case line.MessageTypeText:
		err = c.handleText(ctx, event)
	case line.MessageTypeAudio:
		err = c.handleAudio(ctx, event)
	default:
		return
	}

	if err != nil {
		c.logger.Error("webhook", "turn failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		// Best effort: the reply token may already be consumed or expired.
		if replyErr := c.replier.ReplyText(ctx, event.ReplyToken, genericErrorReply); replyErr != nil {
			c.logger.Warn("webhook", "fallback reply failed", map[string]interface{}{
				"user_id": userId,
				"error":   replyErr.Error(),
			})
		}
	}
}

func (c *webhookController) handleText(ctx context.Context, event line.Event) error {
	text := strings.TrimSpace(event.Message.Text)
	userId := event.Source.UserId

	ready, prompt, err := c.profileService.EnsureProfile(ctx, userId, text, false)
	if err != nil {
		return err
	}
	if !ready {
		return c.replier.ReplyText(ctx, event.ReplyToken, prompt)
	}

	reply, err := c.tutorService.RespondToText(ctx, userId, text)
	if err != nil {
		return err
	}
	return c.replier.ReplyText(ctx, event.ReplyToken, reply)
}

func (c *webhookController) handleAudio(ctx context.Context, event line.Event) error {
	userId := event.Source.UserId

	ready, prompt, err := c.profileService.EnsureProfile(ctx, userId, "", true)
	if err != nil {
		return err
	}
	if !ready {
		return c.replier.ReplyText(ctx, event.ReplyToken, prompt)
	}

	voiceReply, err := c.tutorService.RespondToVoice(ctx, userId, event.Message.Id)
	if err != nil {
		return err
	}
	return c.replier.ReplyAudio(ctx, event.ReplyToken,
		voiceReply.AudioURL, voiceReply.DurationMs, voiceReply.Text)
}
