// Package dlgdump parses dlgdump flags and inspects stored dialogue events.
package dlgdump

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/louisbranch/dialogue/internal/dialogue"
	"github.com/louisbranch/dialogue/internal/dialogue/luaevent"
	"github.com/louisbranch/dialogue/internal/dialogue/storage"
	"github.com/louisbranch/dialogue/internal/dialogue/storage/sqlite"
	entrypoint "github.com/louisbranch/dialogue/internal/platform/cmd"
)

// Config holds dlgdump command configuration.
type Config struct {
	DBPath      string `env:"DB_PATH"    envDefault:"data/dialogue.db"`
	Dialogue    string `env:"ID"`
	Create      string
	ImportLua   string `env:"LUA_DIR"`
	Node        int    `env:"NODE"       envDefault:"-1"`
	Participant string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the dialogue SQLite database")
	fs.StringVar(&cfg.Dialogue, "dialogue", cfg.Dialogue, "dialogue ID to inspect")
	fs.StringVar(&cfg.Create, "create", cfg.Create, "create a dialogue with this name before importing")
	fs.StringVar(&cfg.ImportLua, "import-lua", cfg.ImportLua, "directory of Lua scripts to store as custom enter events")
	fs.IntVar(&cfg.Node, "node", cfg.Node, "node index to dump or import into (-1 dumps every node)")
	fs.StringVar(&cfg.Participant, "participant", cfg.Participant, "participant targeted by imported events")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the dlgdump command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDialogueDump, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	dialogueID := strings.TrimSpace(cfg.Dialogue)
	create := strings.TrimSpace(cfg.Create)
	if dialogueID == "" && create == "" {
		return errors.New("dialogue id is required")
	}
	if dialogueID != "" && create != "" {
		return errors.New("-dialogue and -create are mutually exclusive")
	}
	if cfg.ImportLua != "" {
		if cfg.Node < 0 {
			return errors.New("node index is required when importing")
		}
		if strings.TrimSpace(cfg.Participant) == "" {
			return errors.New("participant is required when importing")
		}
	}

	registry := dialogue.NewCustomRegistry()
	if err := luaevent.Register(registry); err != nil {
		return fmt.Errorf("register lua events: %w", err)
	}
	store, err := sqlite.Open(cfg.DBPath, registry)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	if create != "" {
		d, err := store.CreateDialogue(ctx, create)
		if err != nil {
			return err
		}
		dialogueID = d.ID
	}
	if cfg.ImportLua != "" {
		if err := importLua(ctx, store, dialogueID, cfg); err != nil {
			return err
		}
	}
	return dump(ctx, store, dialogueID, cfg.Node, out)
}

func importLua(ctx context.Context, store storage.DialogueStore, dialogueID string, cfg Config) error {
	scripts, err := luaevent.LoadDir(ctx, cfg.ImportLua)
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return fmt.Errorf("no Lua scripts in %s", cfg.ImportLua)
	}
	events := make([]dialogue.Event, 0, len(scripts))
	for _, script := range scripts {
		events = append(events, dialogue.CustomEvent{
			ParticipantName: strings.TrimSpace(cfg.Participant),
			Event:           script,
		})
	}
	if err := store.PutNodeEvents(ctx, storage.NodeEvents{
		DialogueID: dialogueID,
		Node:       cfg.Node,
		Events:     events,
	}); err != nil {
		return fmt.Errorf("import lua events: %w", err)
	}
	log.Printf("imported %d lua events into node %d", len(events), cfg.Node)
	return nil
}

func dump(ctx context.Context, store storage.DialogueStore, dialogueID string, node int, out io.Writer) error {
	d, err := store.GetDialogue(ctx, dialogueID)
	if err != nil {
		return fmt.Errorf("get dialogue %s: %w", dialogueID, err)
	}
	nodes := []int{node}
	if node < 0 {
		if nodes, err = store.ListNodes(ctx, d.ID); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "dialogue %s %q\n", d.ID, d.Name)
	for _, index := range nodes {
		list, err := store.ListNodeEvents(ctx, d.ID, index)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "node %d\n", index)
		for i, event := range list.Events {
			fmt.Fprintf(out, "  %d %s\n", i, describe(event))
		}
	}
	return nil
}

func describe(event dialogue.Event) string {
	switch e := event.(type) {
	case dialogue.BuiltinEvent:
		return fmt.Sprintf("builtin %s %s event=%q int=%d float=%g name=%q delta=%t bool=%t",
			e.ParticipantName, e.EventType, e.EventName, e.IntValue, e.FloatValue, e.NameValue, e.Delta, e.BoolValue)
	case dialogue.CustomEvent:
		if e.Event == nil {
			return fmt.Sprintf("custom %s <empty>", e.ParticipantName)
		}
		if script, ok := e.Event.(*luaevent.Event); ok {
			return fmt.Sprintf("custom %s %s:%s", e.ParticipantName, e.Event.CustomEventType(), script.Name)
		}
		return fmt.Sprintf("custom %s %s", e.ParticipantName, e.Event.CustomEventType())
	default:
		return fmt.Sprintf("%T %s", event, event.TargetName())
	}
}
