// Package storage defines persistence contracts for dialogue records and the
// enter events attached to their nodes.
package storage

import (
	"context"
	"time"

	"github.com/louisbranch/dialogue/internal/dialogue"
	apperrors "github.com/louisbranch/dialogue/internal/platform/errors"
)

// FormatVersion is written next to every encoded event. The event records
// themselves carry no version, so any change to their field order must bump
// this value and teach readers the old layout.
const FormatVersion = 1

// Event kinds stored alongside the payload.
const (
	KindBuiltin = "builtin"
	KindCustom  = "custom"
)

// ErrNotFound indicates a requested dialogue record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// Dialogue is one stored dialogue asset.
type Dialogue struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NodeEvents holds the ordered enter events of one dialogue node.
type NodeEvents struct {
	DialogueID string
	Node       int
	Events     []dialogue.Event
}

// DialogueStore persists dialogues and their node events.
type DialogueStore interface {
	CreateDialogue(ctx context.Context, name string) (Dialogue, error)
	GetDialogue(ctx context.Context, id string) (Dialogue, error)
	PutNodeEvents(ctx context.Context, node NodeEvents) error
	ListNodeEvents(ctx context.Context, dialogueID string, node int) (NodeEvents, error)
	ListNodes(ctx context.Context, dialogueID string) ([]int, error)
}
