package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/descargabot/descargabot/internal/bot"
)

func TestToUpdate_TextMessage(t *testing.T) {
	t.Parallel()
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 11,
			From:      &tgbotapi.User{ID: 42, FirstName: "Ana"},
			Text:      " /start ",
		},
	}
	converted, ok := toUpdate(update)
	if !ok {
		t.Fatalf("toUpdate skipped a text message")
	}
	if converted.Sender != bot.Identity(42) || converted.SenderName != "Ana" {
		t.Fatalf("sender = %d/%q, want 42/Ana", converted.Sender, converted.SenderName)
	}
	if converted.Text != "/start" {
		t.Fatalf("text = %q, want /start", converted.Text)
	}
	if converted.MessageID != 11 {
		t.Fatalf("message id = %d, want 11", converted.MessageID)
	}
}

func TestToUpdate_SkipsNonMessages(t *testing.T) {
	t.Parallel()
	if _, ok := toUpdate(tgbotapi.Update{}); ok {
		t.Fatalf("update without message must be skipped")
	}
	if _, ok := toUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Text: "x"}}); ok {
		t.Fatalf("message without sender must be skipped")
	}
}

func TestToUpdate_Document(t *testing.T) {
	t.Parallel()
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: 42},
			Caption:  "mira esto",
			Document: &tgbotapi.Document{FileName: "movie.mp4", FileSize: 2048000},
		},
	}
	converted, ok := toUpdate(update)
	if !ok {
		t.Fatalf("toUpdate skipped a document message")
	}
	if converted.Document == nil {
		t.Fatalf("document metadata missing")
	}
	if converted.Document.FileName != "movie.mp4" || converted.Document.SizeBytes != 2048000 {
		t.Fatalf("document = %+v, want movie.mp4/2048000", converted.Document)
	}
	if converted.Text != "mira esto" {
		t.Fatalf("caption fallback text = %q, want mira esto", converted.Text)
	}
}

// Static command texts render as Markdown; replies echoing user input are
// sent plain so an unbalanced entity in the echoed text (a lone "_" in a
// URL) cannot make the platform reject the send.
func TestBuildMessage_ParseMode(t *testing.T) {
	t.Parallel()
	static := buildMessage(bot.Identity(42), bot.Reply{Text: "**Panel**", Markdown: true})
	if static.ParseMode != tgbotapi.ModeMarkdown {
		t.Fatalf("static reply parse mode = %q, want %q", static.ParseMode, tgbotapi.ModeMarkdown)
	}

	echoed := buildMessage(bot.Identity(42), bot.Reply{Text: "📥 Enlace: https://example.com/my_file.mp4..."})
	if echoed.ParseMode != "" {
		t.Fatalf("echoed reply parse mode = %q, want none", echoed.ParseMode)
	}
	if echoed.Text != "📥 Enlace: https://example.com/my_file.mp4..." {
		t.Fatalf("echoed reply text altered: %q", echoed.Text)
	}
}

func TestBuildMessage_Keyboard(t *testing.T) {
	t.Parallel()
	msg := buildMessage(bot.Identity(42), bot.Reply{
		Text:     "menu",
		Keyboard: &bot.Keyboard{Rows: []bot.Button{{Label: "📊", Data: "stats"}}},
		Markdown: true,
	})
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("reply markup type = %T, want InlineKeyboardMarkup", msg.ReplyMarkup)
	}
	if len(markup.InlineKeyboard) != 1 {
		t.Fatalf("keyboard rows = %d, want 1", len(markup.InlineKeyboard))
	}
}

func TestBuildKeyboard(t *testing.T) {
	t.Parallel()
	markup := buildKeyboard(bot.Keyboard{Rows: []bot.Button{
		{Label: "📊 Estadísticas", Data: "stats"},
		{Label: "📢 Broadcast", Data: "broadcast"},
		{Label: "🚫 Cancelar", Data: "cancel"},
	}})
	if len(markup.InlineKeyboard) != 3 {
		t.Fatalf("keyboard rows = %d, want 3", len(markup.InlineKeyboard))
	}
	for i, want := range []string{"stats", "broadcast", "cancel"} {
		row := markup.InlineKeyboard[i]
		if len(row) != 1 || row[0].CallbackData == nil || *row[0].CallbackData != want {
			t.Fatalf("row %d = %+v, want callback %q", i, row, want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	t.Parallel()
	short := "hola"
	if got := truncateText(short); got != short {
		t.Fatalf("truncateText(short) = %q, want unchanged", got)
	}
	long := strings.Repeat("a", maxMessageLength+10)
	got := truncateText(long)
	if len(got) > maxMessageLength {
		t.Fatalf("truncated length = %d, want <= %d", len(got), maxMessageLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated text must end with ellipsis")
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()
	if got := sanitizeText("válido"); got != "válido" {
		t.Fatalf("sanitizeText(valid) = %q, want unchanged", got)
	}
	invalid := "abc\xff\xfedef"
	got := sanitizeText(invalid)
	if strings.ContainsRune(got, '�') || got == invalid {
		t.Fatalf("sanitizeText must strip invalid bytes, got %q", got)
	}
}
