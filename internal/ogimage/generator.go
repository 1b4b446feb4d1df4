package ogimage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/ottodough/internal/content"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

// FileName is the card file written in each item's directory.
const FileName = "og.png"

// Generator writes a card for every content item.
type Generator struct {
	renderer *Renderer
	author   string
	log      *logger.Logger
}

// NewGenerator creates a generator that signs every card with author.
func NewGenerator(r *Renderer, author string, log *logger.Logger) *Generator {
	return &Generator{renderer: r, author: author, log: log}
}

// Path returns where the card for item lands under outDir.
func Path(outDir string, item content.Item) string {
	return filepath.Join(outDir, item.Collection, filepath.FromSlash(item.Slug), FileName)
}

// Generate renders and writes cards for items. A failing item is logged
// and skipped; the count of written cards is returned together with every
// failure joined into one error.
func (g *Generator) Generate(ctx context.Context, items []content.Item, outDir string) (int, error) {
	var (
		written int
		errs    []error
	)
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := g.one(item, outDir); err != nil {
			g.log.Error("og image for %s/%s failed: %v", item.Collection, item.Slug, err)
			errs = append(errs, fmt.Errorf("%s/%s: %w", item.Collection, item.Slug, err))
			continue
		}
		written++
		g.log.Debug("og image written: %s/%s", item.Collection, item.Slug)
	}
	g.log.Info("og images generated: %d/%d", written, len(items))
	return written, errors.Join(errs...)
}

func (g *Generator) one(item content.Item, outDir string) error {
	png, err := g.renderer.Render(item.Title, g.author)
	if err != nil {
		return err
	}
	path := Path(outDir, item)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, png, 0o644)
}
