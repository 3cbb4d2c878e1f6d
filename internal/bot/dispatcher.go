package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Fixed replies for the failure conditions a handler never sees. Every
// update gets some reply; nothing is silently dropped.
const (
	deniedReply        = "❌ No tienes permisos de administrador."
	internalErrorReply = "⚠️ Ocurrió un error procesando tu mensaje. Inténtalo de nuevo."
)

// DispatcherState is the externally observable state of the dispatch loop.
type DispatcherState string

const (
	StateRunning DispatcherState = "running"
	StateStopped DispatcherState = "stopped"
)

// Dispatcher drives the event loop: it pulls updates from the transport
// stream, classifies them, resolves the handler, enforces access policy,
// and emits replies. It owns the Registry for its lifetime and shares no
// mutable state with the liveness server.
type Dispatcher struct {
	registry *Registry
	policy   *AccessPolicy
	sink     ReplySink
	fallback Handler
	logger   *slog.Logger
	running  atomic.Bool
}

// NewDispatcher creates a Dispatcher. fallback handles updates whose dispatch
// key has no registry entry; it is required so no update goes unanswered.
func NewDispatcher(log *slog.Logger, registry *Registry, policy *AccessPolicy, sink ReplySink, fallback Handler) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		registry: registry,
		policy:   policy,
		sink:     sink,
		fallback: fallback,
		logger:   log.With(slog.String("component", "dispatcher")),
	}
}

// State reports whether the dispatch loop is currently consuming updates.
func (d *Dispatcher) State() DispatcherState {
	if d.running.Load() {
		return StateRunning
	}
	return StateStopped
}

// Run consumes the update stream until ctx is cancelled or the stream
// closes. Updates are processed sequentially in delivery order, so per-sender
// FIFO is preserved. Per-update failures are contained: a failing handler
// downgrades to an error reply and the loop continues.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan Update) error {
	d.running.Store(true)
	defer d.running.Store(false)
	d.logger.Info("dispatcher start")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stop")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				d.logger.Info("update stream closed")
				return nil
			}
			d.dispatch(ctx, update)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, update Update) {
	category := Classify(update)
	key := category.DispatchKey()

	handler, level, ok := d.registry.Lookup(key)
	if !ok {
		d.logger.Info("unroutable update",
			slog.String("dispatch_key", key),
			slog.Int64("sender", int64(update.Sender)),
		)
		handler = d.fallback
		level = LevelPublic
	}

	if !d.policy.IsAuthorized(update.Sender, level) {
		d.logger.Warn("authorization denied",
			slog.String("dispatch_key", key),
			slog.Int64("sender", int64(update.Sender)),
		)
		d.reply(ctx, update, Reply{Text: deniedReply})
		return
	}

	reply, err := d.invoke(ctx, handler, update)
	if err != nil {
		d.logger.Error("handler failed",
			slog.String("dispatch_key", key),
			slog.Int64("sender", int64(update.Sender)),
			slog.Any("error", err),
		)
		d.reply(ctx, update, Reply{Text: internalErrorReply})
		return
	}
	d.reply(ctx, update, reply)
}

// invoke runs the handler with panic containment: a panicking handler must
// never crash the dispatch loop.
func (d *Dispatcher) invoke(ctx context.Context, handler Handler, update Update) (reply Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler.Handle(ctx, update)
}

func (d *Dispatcher) reply(ctx context.Context, update Update, reply Reply) {
	if reply.Text == "" && reply.Keyboard == nil {
		// Every update should yield a reply; a handler returning an empty
		// one is a handler bug worth surfacing.
		d.logger.Warn("empty reply skipped",
			slog.Int("message_id", update.MessageID),
			slog.Int64("sender", int64(update.Sender)),
		)
		return
	}
	if err := d.sink.SendReply(ctx, update.Sender, reply); err != nil {
		d.logger.Error("send reply failed",
			slog.Int64("sender", int64(update.Sender)),
			slog.Any("error", err),
		)
	}
}
