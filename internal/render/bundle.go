package render

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kakunje/prakriti/internal/assessment"
	"golang.org/x/sync/errgroup"
)

// WriteBundle renders r in every requested format into dir, concurrently,
// and returns the written paths in format order. dir is created if needed.
func WriteBundle(ctx context.Context, dir string, r *assessment.Report, formats []Format, opts Options) ([]string, error) {
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	for _, f := range formats {
		if _, ok := fileNames[f]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	paths := make([]string, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, FileName(f))
			if err := writeFile(path, f, r, opts); err != nil {
				return fmt.Errorf("rendering %s: %w", f, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeFile(path string, f Format, r *assessment.Report, opts Options) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	if err := Render(w, f, r, opts); err != nil {
		out.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
