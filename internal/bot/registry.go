package bot

import (
	"fmt"
	"strings"
	"sync"
)

// Registry is the static routing table from dispatch keys to handlers.
// All handlers are registered at startup; the table is read-only thereafter.
// It must be created via NewRegistry and passed explicitly to the Dispatcher.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
}

type registryEntry struct {
	handler Handler
	level   AccessLevel
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: map[string]registryEntry{},
	}
}

// Register adds a handler under the given dispatch key. Registering a key
// twice is an error: routing must never be silently overwritten.
func (r *Registry) Register(key string, level AccessLevel, h Handler) error {
	if h == nil {
		return fmt.Errorf("handler is nil")
	}
	key = normalizeKey(key)
	if key == "" {
		return fmt.Errorf("dispatch key is required")
	}
	if level == "" {
		level = LevelPublic
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("dispatch key already registered: %s", key)
	}
	r.entries[key] = registryEntry{handler: h, level: level}
	return nil
}

// MustRegister calls Register and panics on error. Intended for startup wiring.
func (r *Registry) MustRegister(key string, level AccessLevel, h Handler) {
	if err := r.Register(key, level, h); err != nil {
		panic(err)
	}
}

// Lookup returns the handler and access level registered under key.
func (r *Registry) Lookup(key string) (Handler, AccessLevel, bool) {
	key = normalizeKey(key)
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[key]
	if !ok {
		return nil, "", false
	}
	return entry.handler, entry.level, true
}

// Keys returns all registered dispatch keys.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	return keys
}

func normalizeKey(raw string) string {
	return strings.TrimSpace(strings.ToLower(raw))
}
