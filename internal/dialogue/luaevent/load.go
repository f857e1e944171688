package luaevent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Extension is the file suffix LoadDir picks up.
const Extension = ".lua"

// LoadDir reads and compiles every *.lua file directly under dir. Events are
// named after their file and returned in file name order. The first file that
// fails to read or compile aborts the load.
func LoadDir(ctx context.Context, dir string) ([]*Event, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read lua dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), Extension) {
			files = append(files, entry.Name())
		}
	}

	events := make([]*Event, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			source, err := os.ReadFile(filepath.Join(dir, file))
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			event := New(strings.TrimSuffix(file, Extension), string(source))
			if err := event.Compile(); err != nil {
				return err
			}
			events[i] = event
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return events, nil
}
