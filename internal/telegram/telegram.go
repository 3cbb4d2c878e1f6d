// Package telegram adapts the Telegram Bot API to the dispatch core: it
// produces the inbound update stream and implements the reply sink.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/descargabot/descargabot/internal/bot"
)

const (
	maxMessageLength = 4096
	pollTimeout      = 30

	reconnectBaseDelay = 1 * time.Second
	reconnectMaxDelay  = 30 * time.Second
)

// Adapter wraps a Telegram bot client. It owns the long-poll update stream
// and outbound reply delivery; nothing else in the process talks to the
// platform directly.
type Adapter struct {
	logger *slog.Logger
	api    *tgbotapi.BotAPI

	// stopPolling terminates the platform's long-poll loop, which closes the
	// update channel. Overridable so stream tests can run without an API client.
	stopPolling func()
}

// NewAdapter creates an Adapter for the given bot token. Failing to build
// the API client is a startup failure; transient transport outages after
// startup are handled inside the update stream instead.
func NewAdapter(log *slog.Logger, token string) (*Adapter, error) {
	if log == nil {
		log = slog.Default()
	}
	logger := log.With(slog.String("adapter", "telegram"))
	_ = tgbotapi.SetLogger(&slogBotLogger{log: logger})
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	logger.Info("bot authorized", slog.String("username", api.Self.UserName))
	return &Adapter{logger: logger, api: api, stopPolling: api.StopReceivingUpdates}, nil
}

// Updates starts long-polling and returns the inbound update stream. The
// stream closes when ctx is cancelled. If the platform stream fails while
// ctx is still live, the adapter reconnects with exponential backoff rather
// than terminating the process on a single glitch.
func (a *Adapter) Updates(ctx context.Context) <-chan bot.Update {
	out := make(chan bot.Update)
	go func() {
		defer close(out)
		delay := reconnectBaseDelay
		for {
			updateConfig := tgbotapi.NewUpdate(0)
			updateConfig.Timeout = pollTimeout
			updates := a.api.GetUpdatesChan(updateConfig)
			if a.pump(ctx, updates, out, &delay) {
				return
			}
			a.logger.Warn("update stream lost, reconnecting", slog.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay = min(delay*2, reconnectMaxDelay)
		}
	}()
	return out
}

// pump forwards converted updates until the stream ends. It returns true
// when ctx was cancelled (terminal) and false when the platform channel
// closed on its own (reconnect).
func (a *Adapter) pump(ctx context.Context, updates tgbotapi.UpdatesChannel, out chan<- bot.Update, delay *time.Duration) bool {
	for {
		select {
		case <-ctx.Done():
			a.stopPolling()
			// Drain so the library's polling goroutine can finish writing
			// and exit; an in-flight long poll would otherwise keep the
			// getUpdates session alive.
			for range updates {
			}
			return true
		case update, ok := <-updates:
			if !ok {
				return false
			}
			*delay = reconnectBaseDelay
			converted, ok := toUpdate(update)
			if !ok {
				continue
			}
			a.logger.Info("inbound received",
				slog.Int("message_id", converted.MessageID),
				slog.Int64("sender", int64(converted.Sender)),
			)
			select {
			case <-ctx.Done():
				a.stopPolling()
				for range updates {
				}
				return true
			case out <- converted:
			}
		}
	}
}

// SendReply implements bot.ReplySink.
func (a *Adapter) SendReply(ctx context.Context, to bot.Identity, reply bot.Reply) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if _, err := a.api.Send(buildMessage(to, reply)); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

// slogBotLogger bridges the tgbotapi library logger onto slog at debug level.
type slogBotLogger struct {
	log *slog.Logger
}

func (l *slogBotLogger) Println(v ...interface{}) {
	l.log.Debug(fmt.Sprint(v...))
}

func (l *slogBotLogger) Printf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
