package commands

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/descargabot/descargabot/internal/bot"
)

// urlPreviewLength bounds the URL prefix echoed back in acknowledgments.
const urlPreviewLength = 50

// URLHandler acknowledges URL-classified messages and requests the download
// through the Downloader boundary.
type URLHandler struct {
	downloader Downloader
}

// NewURLHandler creates the URL content handler.
func NewURLHandler(downloader Downloader) *URLHandler {
	return &URLHandler{downloader: downloader}
}

func (h *URLHandler) Handle(ctx context.Context, update bot.Update) (bot.Reply, error) {
	category := bot.Classify(update)
	url := category.URL
	status, err := h.downloader.Request(ctx, DownloadRequest{URL: url})
	if err != nil {
		return bot.Reply{}, fmt.Errorf("request download: %w", err)
	}
	text := "🔍 URL detectada!\n" +
		fmt.Sprintf("📥 Enlace: %s...\n", truncateURL(url)) +
		status + "\n\n" +
		"⚠️ **Nota:** Esta es una versión demo. " +
		"Funcionalidad completa en desarrollo."
	return bot.Reply{Text: text}, nil
}

// DocumentHandler acknowledges received documents with name and size in KB.
type DocumentHandler struct {
	downloader Downloader
}

// NewDocumentHandler creates the document content handler.
func NewDocumentHandler(downloader Downloader) *DocumentHandler {
	return &DocumentHandler{downloader: downloader}
}

func (h *DocumentHandler) Handle(ctx context.Context, update bot.Update) (bot.Reply, error) {
	category := bot.Classify(update)
	status, err := h.downloader.Request(ctx, DownloadRequest{
		FileName:  category.FileName,
		SizeBytes: category.FileSize,
	})
	if err != nil {
		return bot.Reply{}, fmt.Errorf("request download: %w", err)
	}
	text := "📄 Archivo recibido!\n" +
		fmt.Sprintf("📝 Nombre: %s\n", category.FileName) +
		fmt.Sprintf("📦 Tamaño: %d KB\n\n", category.FileSize/1024) +
		status
	return bot.Reply{Text: text}, nil
}

// TextHandler replies to plain-text messages with a usage prompt.
type TextHandler struct{}

// NewTextHandler creates the plain-text content handler.
func NewTextHandler() *TextHandler { return &TextHandler{} }

func (h *TextHandler) Handle(_ context.Context, _ bot.Update) (bot.Reply, error) {
	return bot.Reply{Text: "📝 Mensaje recibido. Envía una URL para descargar contenido."}, nil
}

// FallbackHandler answers updates whose dispatch key matched no registry
// entry, typically unknown commands. No update is ever silently dropped.
type FallbackHandler struct{}

// NewFallbackHandler creates the fallback handler.
func NewFallbackHandler() *FallbackHandler { return &FallbackHandler{} }

func (h *FallbackHandler) Handle(_ context.Context, _ bot.Update) (bot.Reply, error) {
	return bot.Reply{Text: "🤔 No entendí ese comando. Usa /help para ver los comandos disponibles."}, nil
}

// truncateURL cuts the URL to urlPreviewLength bytes on a valid UTF-8 rune
// boundary so the echoed prefix never exceeds the bound.
func truncateURL(url string) string {
	if len(url) <= urlPreviewLength {
		return url
	}
	limit := urlPreviewLength
	for limit > 0 && !utf8.RuneStart(url[limit]) {
		limit--
	}
	return url[:limit]
}
