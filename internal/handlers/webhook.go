// Package handlers exposes the HTTP surface: the Telegram webhook endpoint
// and a health probe. Authentication is a single shared-secret header check;
// everything behind it is the bot's business.
package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	tele "gopkg.in/telebot.v3"
)

const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateProcessor consumes one decoded Telegram update.
type UpdateProcessor interface {
	ProcessUpdate(u tele.Update)
}

// Handlers holds the webhook dependencies.
type Handlers struct {
	Bot    UpdateProcessor
	Secret string
}

// RegisterRoutes mounts the endpoints on the Fiber app.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Post("/webhook", h.Webhook)
	app.Get("/health", h.Health)
}

// Webhook handles POST /webhook: verify the shared secret, decode the
// update, hand it to the bot.
func (h *Handlers) Webhook(c *fiber.Ctx) error {
	if h.Secret == "" || c.Get(secretHeader) != h.Secret {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var update tele.Update
	if err := json.Unmarshal(c.Body(), &update); err != nil {
		log.Printf("[webhook] bad update payload: %v", err)
		return c.SendStatus(fiber.StatusBadRequest)
	}

	h.Bot.ProcessUpdate(update)
	return c.SendString("OK")
}

// Health handles GET /health.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
