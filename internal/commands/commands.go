// Package commands holds the handlers registered in the dispatch table:
// the public and admin commands plus the content handlers for URL, document
// and plain-text messages.
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/descargabot/descargabot/internal/bot"
)

// Command names as registered in the dispatch table.
const (
	CmdStart = "start"
	CmdHelp  = "help"
	CmdAdmin = "admin"
	CmdStats = "stats"
)

// Callback tokens for the admin menu actions. Selection handling is a stub;
// the tokens are what the platform echoes back on button press.
const (
	CallbackStats     = "stats"
	CallbackBroadcast = "broadcast"
	CallbackCancel    = "cancel"
)

// StartHandler replies with the welcome text for /start.
type StartHandler struct{}

// NewStartHandler creates the /start handler.
func NewStartHandler() *StartHandler { return &StartHandler{} }

// Handle greets the sender and lists the supported sources and commands.
func (h *StartHandler) Handle(_ context.Context, update bot.Update) (bot.Reply, error) {
	name := strings.TrimSpace(update.SenderName)
	greeting := "👋 Hola!"
	if name != "" {
		greeting = fmt.Sprintf("👋 Hola %s!", name)
	}
	text := greeting + "\n\n" +
		"🤖 **Bot de Descargas Multiplataforma**\n\n" +
		"📥 **Soporto:**\n" +
		"• YouTube (vídeos/audio)\n" +
		"• Google Drive\n" +
		"• MEGA\n" +
		"• Enlaces directos\n\n" +
		"⚡ **Comandos disponibles:**\n" +
		"/start - Iniciar bot\n" +
		"/help - Ayuda\n" +
		"/admin - Panel admin\n\n" +
		"🚀 **¿Cómo usar?**\n" +
		"Envía el enlace del archivo que quieres descargar."
	return bot.Reply{Text: text, Markdown: true}, nil
}

// HelpHandler replies with the usage guide for /help.
type HelpHandler struct{}

// NewHelpHandler creates the /help handler.
func NewHelpHandler() *HelpHandler { return &HelpHandler{} }

func (h *HelpHandler) Handle(_ context.Context, _ bot.Update) (bot.Reply, error) {
	text := "📖 **Guía de uso:**\n\n" +
		"1. Envía enlace de YouTube para videos/audio\n" +
		"2. Envía enlaces de Google Drive o MEGA\n" +
		"3. También puedes enviar archivos directamente\n\n" +
		"⚠️ **Límites:**\n" +
		"• Tamaño máximo: 2GB\n" +
		"• Formatos: MP4, MP3, AVI, PDF, ZIP\n\n" +
		"❓ **Soporte:**\n" +
		"Para problemas, contacta al administrador"
	return bot.Reply{Text: text, Markdown: true}, nil
}

// AdminHandler replies with the administration menu for /admin. Registered
// AdminOnly; the dispatcher rejects non-admin senders before invocation.
type AdminHandler struct {
	adminID bot.Identity
}

// NewAdminHandler creates the /admin handler echoing the configured admin identifier.
func NewAdminHandler(adminID bot.Identity) *AdminHandler {
	return &AdminHandler{adminID: adminID}
}

func (h *AdminHandler) Handle(_ context.Context, _ bot.Update) (bot.Reply, error) {
	text := "👑 **Panel de Administración**\n\n" +
		fmt.Sprintf("ID Admin: %d\n", h.adminID) +
		"Selecciona una opción:"
	keyboard := &bot.Keyboard{
		Rows: []bot.Button{
			{Label: "📊 Estadísticas", Data: CallbackStats},
			{Label: "📢 Broadcast", Data: CallbackBroadcast},
			{Label: "🚫 Cancelar", Data: CallbackCancel},
		},
	}
	return bot.Reply{Text: text, Keyboard: keyboard, Markdown: true}, nil
}

// StatsHandler replies with the status summary for /stats. The counts are
// fixed placeholders, not derived from real telemetry.
type StatsHandler struct {
	adminID bot.Identity
}

// NewStatsHandler creates the /stats handler.
func NewStatsHandler(adminID bot.Identity) *StatsHandler {
	return &StatsHandler{adminID: adminID}
}

func (h *StatsHandler) Handle(_ context.Context, _ bot.Update) (bot.Reply, error) {
	text := "📊 **Estadísticas del Bot**\n\n" +
		"👥 Usuarios totales: 1\n" +
		"📥 Descargas hoy: 0\n" +
		"💾 Espacio usado: 0 MB\n" +
		"🔄 Estado: Activo ✅\n\n" +
		fmt.Sprintf("🤖 Bot creado por: Admin ID %d", h.adminID)
	return bot.Reply{Text: text, Markdown: true}, nil
}
