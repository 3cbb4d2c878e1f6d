// Package handlers holds the echo route handlers of the liveness server.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const statusPageTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Bot de Descargas Telegram</title>
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 50px; }
        .status { color: green; font-weight: bold; }
    </style>
</head>
<body>
    <h1>🤖 Bot de Descargas Telegram</h1>
    <p class="status">✅ Bot activo y funcionando</p>
    <p>Este bot está diseñado para descargar contenido de múltiples plataformas.</p>
    <p><strong>Admin ID:</strong> %d</p>
    <p>Busca el bot en Telegram para empezar a usarlo.</p>
</body>
</html>
`

// StatusHandler serves the two liveness routes. Stateless per request; it
// reads only the admin identifier captured at startup for the diagnostic
// status page.
type StatusHandler struct {
	logger  *slog.Logger
	adminID int64
}

// NewStatusHandler creates the liveness handler.
func NewStatusHandler(log *slog.Logger, adminID int64) *StatusHandler {
	if log == nil {
		log = slog.Default()
	}
	return &StatusHandler{
		logger:  log.With(slog.String("handler", "status")),
		adminID: adminID,
	}
}

// Register adds the liveness routes. These are the only HTTP routes the
// process exposes, and they carry no authentication: they exist for an
// internal health-check caller.
func (h *StatusHandler) Register(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/health", h.Health)
}

// Home returns the HTML status page embedding the configured admin identifier.
func (h *StatusHandler) Home(c echo.Context) error {
	return c.HTML(http.StatusOK, fmt.Sprintf(statusPageTemplate, h.adminID))
}

// Health answers the external process supervisor.
func (h *StatusHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
