// Package httpapi exposes the bot over HTTP with fiber.
package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	errx "github.com/voice-finder/server/internal/core/error"
	"github.com/voice-finder/server/internal/finder/model"
	logx "github.com/voice-finder/server/pkg/logger"
)

// Handler answers one inbound message.
type Handler interface {
	Handle(ctx context.Context, msg model.InboundMessage) (string, error)
}

type messageRequest struct {
	Channel  string `json:"channel"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts"`
	Text     string `json:"text"`
}

type messageResponse struct {
	ThreadID string `json:"thread_id"`
	TS       string `json:"ts"`
	Reply    string `json:"reply"`
}

type MessageController struct {
	bot Handler
}

func NewMessageController(bot Handler) *MessageController {
	return &MessageController{bot: bot}
}

func (c *MessageController) RegisterRoutes(r fiber.Router) {
	r.Get("/healthz", c.Health)
	v1 := r.Group("/v1")
	v1.Post("/messages", c.PostMessage)
}

func (c *MessageController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

// PostMessage handles one message. A missing ts starts a new thread.
func (c *MessageController) PostMessage(ctx *fiber.Ctx) error {
	var req messageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Channel = strings.TrimSpace(req.Channel)
	if req.Channel == "" {
		req.Channel = "http"
	}
	if strings.TrimSpace(req.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}
	if req.TS == "" {
		req.TS = uuid.NewString()
	}

	msg := model.InboundMessage{Text: req.Text, Channel: req.Channel, TS: req.TS, ThreadTS: req.ThreadTS}
	reply, err := c.bot.Handle(ctx.UserContext(), msg)
	if err != nil {
		return err
	}
	return ctx.JSON(messageResponse{ThreadID: msg.ThreadID(), TS: req.TS, Reply: reply})
}

// New builds the fiber app with sonic JSON and the error mapping.
func New(bot Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             64 * 1024,
		DisableStartupMessage: true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          errorHandler,
	})
	NewMessageController(bot).RegisterRoutes(app)
	return app
}

func errorHandler(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := errx.SystemErrorMessage

	var fe *fiber.Error
	var app *errx.AppError
	switch {
	case errors.As(err, &fe):
		status, message = fe.Code, fe.Message
	case errors.As(err, &app):
		status, message = app.Status, app.Message
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, message = fiber.StatusServiceUnavailable, "request timed out"
	}
	if status >= fiber.StatusInternalServerError {
		logx.Error().Err(err).Str("path", ctx.Path()).Msg("request failed")
	}
	return ctx.Status(status).JSON(fiber.Map{"message": message})
}
