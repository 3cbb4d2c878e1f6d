package telegram

import (
	"context"
	"log/slog"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/descargabot/descargabot/internal/bot"
)

func testAdapter(stop func()) *Adapter {
	if stop == nil {
		stop = func() {}
	}
	return &Adapter{logger: slog.Default(), stopPolling: stop}
}

func messageUpdate(id int, sender int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: id,
			From:      &tgbotapi.User{ID: sender},
			Text:      text,
		},
	}
}

// A closed platform channel signals reconnect (pump returns false), and a
// successfully delivered update resets the backoff delay first.
func TestPump_ChannelCloseSignalsReconnect(t *testing.T) {
	t.Parallel()
	a := testAdapter(nil)
	platform := make(chan tgbotapi.Update, 1)
	platform <- messageUpdate(11, 42, "hola")
	close(platform)

	out := make(chan bot.Update, 1)
	delay := 10 * time.Second
	done := make(chan bool, 1)
	go func() {
		done <- a.pump(context.Background(), tgbotapi.UpdatesChannel(platform), out, &delay)
	}()

	select {
	case converted := <-out:
		if converted.Sender != bot.Identity(42) || converted.Text != "hola" {
			t.Fatalf("forwarded update = %+v, want sender 42 text hola", converted)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("update was not forwarded")
	}

	select {
	case terminal := <-done:
		if terminal {
			t.Fatalf("pump reported terminal stop, want reconnect signal")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pump did not return after channel close")
	}
	if delay != reconnectBaseDelay {
		t.Fatalf("delay = %v after delivered update, want reset to %v", delay, reconnectBaseDelay)
	}
}

// Cancellation is terminal: pump stops the poll loop, drains what the
// platform already buffered, and returns true so the stream goroutine exits.
func TestPump_CancelStopsAndDrains(t *testing.T) {
	t.Parallel()
	platform := make(chan tgbotapi.Update, 2)
	platform <- messageUpdate(1, 42, "uno")
	platform <- messageUpdate(2, 42, "dos")

	stopped := make(chan struct{})
	a := testAdapter(func() {
		close(stopped)
		close(platform)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan bot.Update)
	done := make(chan bool, 1)
	go func() {
		done <- a.pump(ctx, tgbotapi.UpdatesChannel(platform), out, new(time.Duration))
	}()

	select {
	case terminal := <-done:
		if !terminal {
			t.Fatalf("pump reported reconnect, want terminal stop")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pump did not terminate after cancellation")
	}

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("poll loop was never stopped")
	}
	if _, open := <-platform; open {
		t.Fatalf("platform channel not fully drained")
	}
}
