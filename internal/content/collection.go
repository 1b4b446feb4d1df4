package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/ottodough/internal/domain"
)

// Collection names.
const (
	Projects = "projects"
	Posts    = "posts"
)

// Collections lists every known collection.
var Collections = []string{Projects, Posts}

var validate = validator.New()

// Item is one parsed content entry. Exactly one of Project or Post is set.
type Item struct {
	Collection  string
	Slug        string
	Path        string
	Title       string
	Description string
	Date        time.Time
	Body        string

	Project *ProjectMeta
	Post    *PostMeta
}

// ParseItem decodes one file's bytes as a member of collection.
func ParseItem(collection, slug string, data []byte) (*Item, error) {
	item := &Item{Collection: collection, Slug: slug}
	switch collection {
	case Projects:
		var meta ProjectMeta
		body, err := ParseFrontMatter(data, &meta)
		if err != nil {
			return nil, err
		}
		item.Project = &meta
		item.Title, item.Description, item.Date = meta.Title, meta.Description, meta.Date.Time
		item.Body = string(body)
	case Posts:
		var meta PostMeta
		body, err := ParseFrontMatter(data, &meta)
		if err != nil {
			return nil, err
		}
		item.Post = &meta
		item.Title, item.Description, item.Date = meta.Title, meta.Description, meta.Date.Time
		item.Body = string(body)
	default:
		return nil, fmt.Errorf("%w: unknown collection %q", domain.ErrInvalidContent, collection)
	}
	return item, nil
}

// LoadCollection parses every .md and .mdx file under dir/collection.
// A missing directory yields no items. Files that fail to parse are
// skipped and reported together in the returned error, alongside the
// items that did load.
func LoadCollection(dir, collection string) ([]Item, error) {
	root := filepath.Join(dir, collection)
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var (
		items []Item
		errs  []error
	)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := strings.ToLower(filepath.Ext(path))
		if d.IsDir() || (ext != ".md" && ext != ".mdx") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		item, err := ParseItem(collection, Slug(rel), data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		item.Path = path
		items = append(items, *item)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Slug < items[j].Slug })
	return items, errors.Join(errs...)
}

// LoadAll loads every known collection under dir.
func LoadAll(dir string) ([]Item, error) {
	var (
		all  []Item
		errs []error
	)
	for _, c := range Collections {
		items, err := LoadCollection(dir, c)
		all = append(all, items...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return all, errors.Join(errs...)
}

// Slug derives a URL slug from a path relative to its collection root:
// extension dropped, lowercased, spaces as dashes, forward slashes.
func Slug(rel string) string {
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = filepath.ToSlash(rel)
	rel = strings.ToLower(rel)
	return strings.Join(strings.Fields(rel), "-")
}
