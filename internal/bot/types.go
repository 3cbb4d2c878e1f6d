package bot

import "context"

// Identity is the platform-assigned identifier of an update's sender.
// It is opaque to the dispatch core: it is only ever compared for admin
// membership and handed back to the transport for reply delivery.
type Identity int64

// AccessLevel is the access requirement attached to a registered handler.
type AccessLevel string

const (
	// LevelPublic handlers are invocable by any Identity.
	LevelPublic AccessLevel = "public"
	// LevelAdminOnly handlers require the sender to be in the configured admin set.
	LevelAdminOnly AccessLevel = "admin_only"
)

// Document carries the metadata of a file attached to an update.
type Document struct {
	FileName  string
	SizeBytes int64
}

// Update is one inbound event from the transport. It is created by the
// transport adapter, consumed exactly once by the Dispatcher, and discarded
// after the reply is emitted.
type Update struct {
	MessageID  int
	Sender     Identity
	SenderName string
	Text       string
	Document   *Document
}

// Button is one selectable action in an inline keyboard. Data is the opaque
// callback token delivered back by the platform when the button is pressed.
type Button struct {
	Label string
	Data  string
}

// Keyboard is an inline menu attached to a reply, one button per row.
type Keyboard struct {
	Rows []Button
}

// Reply is the outbound response produced by a handler for a single update.
// Markdown marks static, trusted text for Markdown rendering; replies that
// echo user input leave it unset so stray formatting characters in the
// echoed content cannot make the platform reject delivery.
type Reply struct {
	Text     string
	Keyboard *Keyboard
	Markdown bool
}

// ReplySink delivers a reply back to the Identity that triggered the update.
// Implemented by the transport adapter.
type ReplySink interface {
	SendReply(ctx context.Context, to Identity, reply Reply) error
}

// Handler produces a reply for one classified update.
type Handler interface {
	Handle(ctx context.Context, update Update) (Reply, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, update Update) (Reply, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, update Update) (Reply, error) {
	return f(ctx, update)
}
