package gen

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into its package directory. Files
// are written concurrently; they never share a path. The first failure
// cancels the files not yet started.
func WriteFiles(ctx context.Context, files []GeneratedFile) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
				return fmt.Errorf("creating directory %s: %w", file.Dir, err)
			}

			if err := os.WriteFile(file.Path(), file.Content, filePerm); err != nil {
				return fmt.Errorf("writing file %s: %w", file.Path(), err)
			}

			return nil
		})
	}

	return g.Wait()
}
