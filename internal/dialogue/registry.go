package dialogue

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CustomDefinition describes a decodable custom event type.
type CustomDefinition struct {
	// Type is the tag written by CustomEventObject.CustomEventType.
	Type string
	// New returns an empty object ready for DecodeDialogue.
	New func() CustomEventObject
}

// CustomRegistry maps custom event tags to constructors.
type CustomRegistry struct {
	mu   sync.RWMutex
	defs map[string]CustomDefinition
}

// NewCustomRegistry returns an empty registry.
func NewCustomRegistry() *CustomRegistry {
	return &CustomRegistry{defs: make(map[string]CustomDefinition)}
}

// Register adds a definition. Empty and duplicate tags are rejected.
func (r *CustomRegistry) Register(def CustomDefinition) error {
	if r == nil {
		return fmt.Errorf("custom registry is required")
	}
	tag := strings.TrimSpace(def.Type)
	if tag == "" {
		return fmt.Errorf("custom event type is required")
	}
	if tag != def.Type {
		return fmt.Errorf("custom event type %q must not have surrounding spaces", def.Type)
	}
	if def.New == nil {
		return fmt.Errorf("custom event type %s: constructor is required", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[tag]; exists {
		return fmt.Errorf("custom event type %s already registered", tag)
	}
	r.defs[tag] = def
	return nil
}

// Lookup returns the definition for tag. A nil registry has none.
func (r *CustomRegistry) Lookup(tag string) (CustomDefinition, bool) {
	if r == nil {
		return CustomDefinition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[tag]
	return def, ok
}

// Types lists registered tags in sorted order.
func (r *CustomRegistry) Types() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.defs))
	for tag := range r.defs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
