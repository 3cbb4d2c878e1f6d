package bot

import "strings"

// CommandPrefix is the leading character that marks a command message.
const CommandPrefix = "/"

// Fixed dispatch keys for non-command content categories. Namespaced so a
// registered command can never collide with a category key.
const (
	KeyURL      = "message:url"
	KeyDocument = "message:document"
	KeyText     = "message:text"
)

// CategoryKind discriminates the content categories an update can classify into.
type CategoryKind string

const (
	KindCommand  CategoryKind = "command"
	KindURL      CategoryKind = "url"
	KindDocument CategoryKind = "document"
	KindText     CategoryKind = "text"
)

// Category is the classification result for one update. Immutable once computed.
type Category struct {
	Kind     CategoryKind
	Command  string
	URL      string
	FileName string
	FileSize int64
	Text     string
}

// DispatchKey returns the registry key this category routes to: the command
// name for commands, a fixed category key otherwise.
func (c Category) DispatchKey() string {
	switch c.Kind {
	case KindCommand:
		return c.Command
	case KindURL:
		return KeyURL
	case KindDocument:
		return KeyDocument
	default:
		return KeyText
	}
}

// Classify determines the content category of an update. It is a pure,
// total function: every update classifies, and classifying the same update
// twice yields the same result.
//
// Priority order matters: a command must never be misclassified as a URL or
// plain text even if its argument looks like one. Whether a command token is
// actually registered is resolved later at registry lookup, so unknown
// commands still route to the fallback handler instead of the text handler.
func Classify(u Update) Category {
	if name := commandToken(u.Text); name != "" {
		return Category{Kind: KindCommand, Command: name}
	}
	if u.Document != nil {
		return Category{Kind: KindDocument, FileName: u.Document.FileName, FileSize: u.Document.SizeBytes}
	}
	if strings.HasPrefix(u.Text, "http://") || strings.HasPrefix(u.Text, "https://") {
		return Category{Kind: KindURL, URL: u.Text}
	}
	return Category{Kind: KindText, Text: u.Text}
}

// commandToken extracts the command name from message text, or "" if the
// text is not a command. The token is the first word without the leading
// prefix, lowercased, with any "@botname" suffix stripped (Telegram appends
// it in group chats).
func commandToken(text string) string {
	if !strings.HasPrefix(text, CommandPrefix) {
		return ""
	}
	token := strings.TrimPrefix(text, CommandPrefix)
	if idx := strings.IndexFunc(token, func(r rune) bool { return r == ' ' || r == '\n' || r == '\t' }); idx >= 0 {
		token = token[:idx]
	}
	if idx := strings.Index(token, "@"); idx >= 0 {
		token = token[:idx]
	}
	return strings.ToLower(strings.TrimSpace(token))
}
