// Package sqlite provides a SQLite-backed dialogue storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/louisbranch/dialogue/internal/dialogue"
	"github.com/louisbranch/dialogue/internal/dialogue/storage"
	"github.com/louisbranch/dialogue/internal/dialogue/storage/sqlite/migrations"
	apperrors "github.com/louisbranch/dialogue/internal/platform/errors"
	"github.com/louisbranch/dialogue/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/dialogue/internal/platform/timeouts"
)

// Store persists dialogues and node events in SQLite.
type Store struct {
	sqlDB    *sql.DB
	registry *dialogue.CustomRegistry
	now      func() time.Time
}

var _ storage.DialogueStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite dialogue store and applies embedded migrations.
// registry resolves custom event types when reading; nil means custom events
// cannot be decoded.
func Open(path string, registry *dialogue.CustomRegistry) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if registry == nil {
		registry = dialogue.NewCustomRegistry()
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		filepath.Clean(path), timeouts.SQLiteBusy.Milliseconds())
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, registry: registry, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateDialogue inserts a dialogue with a fresh UUID.
func (s *Store) CreateDialogue(ctx context.Context, name string) (storage.Dialogue, error) {
	if err := ctx.Err(); err != nil {
		return storage.Dialogue{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Dialogue{}, fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.Dialogue{}, fmt.Errorf("dialogue name is required")
	}

	now := s.now().UTC()
	d := storage.Dialogue{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: fromMillis(toMillis(now)),
		UpdatedAt: fromMillis(toMillis(now)),
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO dialogues (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		d.ID, d.Name, toMillis(d.CreatedAt), toMillis(d.UpdatedAt),
	); err != nil {
		return storage.Dialogue{}, fmt.Errorf("create dialogue: %w", err)
	}
	return d, nil
}

// GetDialogue returns one dialogue by ID.
func (s *Store) GetDialogue(ctx context.Context, id string) (storage.Dialogue, error) {
	if err := ctx.Err(); err != nil {
		return storage.Dialogue{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Dialogue{}, fmt.Errorf("storage is not configured")
	}
	return getDialogue(ctx, s.sqlDB, strings.TrimSpace(id))
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getDialogue(ctx context.Context, q queryer, id string) (storage.Dialogue, error) {
	if id == "" {
		return storage.Dialogue{}, fmt.Errorf("dialogue id is required")
	}
	var (
		d         storage.Dialogue
		createdAt int64
		updatedAt int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM dialogues WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Dialogue{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Dialogue{}, fmt.Errorf("get dialogue: %w", err)
	}
	d.CreatedAt = fromMillis(createdAt)
	d.UpdatedAt = fromMillis(updatedAt)
	return d, nil
}

// PutNodeEvents replaces the enter events of one node.
func (s *Store) PutNodeEvents(ctx context.Context, node storage.NodeEvents) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if node.Node < 0 {
		return fmt.Errorf("node index must not be negative")
	}

	type row struct {
		participant string
		kind        string
		payload     []byte
	}
	rows := make([]row, 0, len(node.Events))
	for i, event := range node.Events {
		kind, payload, err := encodeEvent(event)
		if err != nil {
			return fmt.Errorf("encode node %d event %d: %w", node.Node, i, err)
		}
		rows = append(rows, row{participant: event.TargetName(), kind: kind, payload: payload})
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put node events: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := getDialogue(ctx, tx, strings.TrimSpace(node.DialogueID)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM node_events WHERE dialogue_id = ? AND node_index = ?`,
		node.DialogueID, node.Node,
	); err != nil {
		return fmt.Errorf("clear node events: %w", err)
	}
	for position, r := range rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO node_events (
			   dialogue_id,
			   node_index,
			   position,
			   participant_name,
			   kind,
			   format_version,
			   payload
			 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			node.DialogueID, node.Node, position, r.participant, r.kind, storage.FormatVersion, r.payload,
		); err != nil {
			return fmt.Errorf("insert node event %d: %w", position, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE dialogues SET updated_at = ? WHERE id = ?`,
		toMillis(s.now()), node.DialogueID,
	); err != nil {
		return fmt.Errorf("touch dialogue: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit node events: %w", err)
	}
	return nil
}

// ListNodeEvents returns the enter events of one node in stored order. A node
// without events yields an empty list.
func (s *Store) ListNodeEvents(ctx context.Context, dialogueID string, node int) (storage.NodeEvents, error) {
	if err := ctx.Err(); err != nil {
		return storage.NodeEvents{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.NodeEvents{}, fmt.Errorf("storage is not configured")
	}
	dialogueID = strings.TrimSpace(dialogueID)
	if _, err := getDialogue(ctx, s.sqlDB, dialogueID); err != nil {
		return storage.NodeEvents{}, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT position, kind, format_version, payload
		   FROM node_events
		  WHERE dialogue_id = ? AND node_index = ?
		  ORDER BY position`,
		dialogueID, node,
	)
	if err != nil {
		return storage.NodeEvents{}, fmt.Errorf("list node events: %w", err)
	}
	defer rows.Close()

	out := storage.NodeEvents{DialogueID: dialogueID, Node: node}
	for rows.Next() {
		var (
			position int
			kind     string
			version  int
			payload  []byte
		)
		if err := rows.Scan(&position, &kind, &version, &payload); err != nil {
			return storage.NodeEvents{}, fmt.Errorf("scan node event: %w", err)
		}
		event, err := s.decodeEvent(kind, version, payload)
		if err != nil {
			return storage.NodeEvents{}, fmt.Errorf("decode node %d event %d: %w", node, position, err)
		}
		out.Events = append(out.Events, event)
	}
	if err := rows.Err(); err != nil {
		return storage.NodeEvents{}, fmt.Errorf("iterate node events: %w", err)
	}
	return out, nil
}

// ListNodes returns the indexes of nodes that have stored events.
func (s *Store) ListNodes(ctx context.Context, dialogueID string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	dialogueID = strings.TrimSpace(dialogueID)
	if _, err := getDialogue(ctx, s.sqlDB, dialogueID); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT DISTINCT node_index FROM node_events WHERE dialogue_id = ? ORDER BY node_index`,
		dialogueID,
	)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close()

	var nodes []int
	for rows.Next() {
		var node int
		if err := rows.Scan(&node); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return nodes, nil
}

func encodeEvent(event dialogue.Event) (string, []byte, error) {
	switch e := event.(type) {
	case dialogue.BuiltinEvent:
		payload, err := e.MarshalBinary()
		return storage.KindBuiltin, payload, err
	case dialogue.CustomEvent:
		payload, err := e.MarshalBinary()
		return storage.KindCustom, payload, err
	default:
		return "", nil, fmt.Errorf("unsupported event %T", event)
	}
}

func (s *Store) decodeEvent(kind string, version int, payload []byte) (dialogue.Event, error) {
	if version != storage.FormatVersion {
		return nil, apperrors.WithMetadata(apperrors.CodeUnsupportedFormat,
			fmt.Sprintf("unsupported event format version %d", version),
			map[string]string{"kind": kind})
	}
	switch kind {
	case storage.KindBuiltin:
		var e dialogue.BuiltinEvent
		if err := e.UnmarshalBinary(payload); err != nil {
			return nil, err
		}
		return e, nil
	case storage.KindCustom:
		c, err := s.registry.UnmarshalCustomEvent(payload)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, apperrors.New(apperrors.CodeMalformedRecord, fmt.Sprintf("unknown event kind %q", kind))
	}
}
