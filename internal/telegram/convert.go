package telegram

import (
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/descargabot/descargabot/internal/bot"
)

// toUpdate converts a platform update into the dispatch core's Update.
// Updates without a message or sender (edits, channel posts, member events)
// are skipped.
func toUpdate(update tgbotapi.Update) (bot.Update, bool) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return bot.Update{}, false
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		text = strings.TrimSpace(msg.Caption)
	}
	converted := bot.Update{
		MessageID:  msg.MessageID,
		Sender:     bot.Identity(msg.From.ID),
		SenderName: strings.TrimSpace(msg.From.FirstName),
		Text:       text,
	}
	if msg.Document != nil {
		converted.Document = &bot.Document{
			FileName:  msg.Document.FileName,
			SizeBytes: int64(msg.Document.FileSize),
		}
	}
	return converted, true
}

// buildMessage maps a reply onto the outbound platform message. Only replies
// flagged as Markdown get a parse mode: content acknowledgments echo user
// input, and parsing that as Markdown would let an unbalanced entity (a lone
// "_" in a URL, say) make the platform reject the whole send.
func buildMessage(to bot.Identity, reply bot.Reply) tgbotapi.MessageConfig {
	message := tgbotapi.NewMessage(int64(to), truncateText(sanitizeText(reply.Text)))
	if reply.Markdown {
		message.ParseMode = tgbotapi.ModeMarkdown
	}
	if reply.Keyboard != nil {
		message.ReplyMarkup = buildKeyboard(*reply.Keyboard)
	}
	return message
}

// buildKeyboard maps a reply keyboard onto the platform inline markup,
// one button per row as the admin menu expects.
func buildKeyboard(keyboard bot.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard.Rows))
	for _, button := range keyboard.Rows {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// sanitizeText ensures text is valid UTF-8 for the Telegram API, stripping
// invalid byte sequences.
func sanitizeText(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, "")
}

// truncateText truncates text to maxMessageLength on a valid UTF-8 rune
// boundary, appending "..." when truncation occurs.
func truncateText(text string) string {
	if len(text) <= maxMessageLength {
		return text
	}
	const suffix = "..."
	limit := maxMessageLength - len(suffix)
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit] + suffix
}
