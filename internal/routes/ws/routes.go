package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/dropfour/internal/config"
	"github.com/lk16/dropfour/internal/engine"
	"github.com/lk16/dropfour/internal/services"
	"github.com/lk16/dropfour/internal/ws"
)

func handleWs(c *websocket.Conn) {
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	cfg := c.Locals("config").(*config.ServerConfig)      //nolint: errcheck

	h := ws.NewHandler(c, engine.New(services, cfg.Agent))
	err := h.Handle()
	if err != nil {
		slog.Error("ws handle error", "error", err)
	}
}

func requireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", requireUpgrade, websocket.New(handleWs))
}
