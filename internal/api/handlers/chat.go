package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/coverbot/coverbot-backend/internal/services"
)

const sessionCookie = "sid"

// sessionTTL matches the transcript expiry in the conversation store.
const sessionTTL = 24 * time.Hour

// ChatRequest is the request body for POST /chat
type ChatRequest struct {
	Message string `json:"message"`
	SID     string `json:"sid,omitempty"`
}

// ChatResponse is the response body for POST /chat
type ChatResponse struct {
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// Chat handles chat messages. It resolves the session identity from
// the sid cookie (minting one when absent) and delegates to the chat
// service. Business failures surface as a 200 with an apology message;
// only a malformed request yields a non-2xx status.
func Chat(svc *services.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ChatRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if strings.TrimSpace(req.Message) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "message is required",
			})
		}

		sessionID := c.Cookies(sessionCookie)
		if sessionID == "" {
			sessionID = req.SID
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
		}
		if c.Cookies(sessionCookie) == "" {
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				MaxAge:   int(sessionTTL.Seconds()),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		reply, procErr := svc.ProcessMessage(c.Context(), sessionID, req.Message)

		meta := map[string]interface{}{"session_id": sessionID}
		if procErr != nil {
			meta["error"] = procErr.Error()
		}
		return c.JSON(ChatResponse{Message: reply, Meta: meta})
	}
}
