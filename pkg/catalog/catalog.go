// Package catalog maps file name extensions to display categories.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Other is the category of every extension no category claims.
const Other = "Other"

var ErrDuplicateExtension = errors.New("extension claimed by more than one category")

type Category struct {
	Name       string
	Extensions []string
}

// ExtensionSet is a set of lowercased extensions including the leading dot.
type ExtensionSet map[string]struct{}

func (s ExtensionSet) Has(ext string) bool {
	_, ok := s[strings.ToLower(ext)]
	return ok
}

func (s ExtensionSet) Len() int {
	return len(s)
}

// Sorted returns the extensions in lexical order.
func (s ExtensionSet) Sorted() []string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	categories []Category
	byExt      map[string]string
	index      ExtensionSet
}

func New(categories []Category) (*Catalog, error) {
	c := &Catalog{
		byExt: make(map[string]string),
		index: make(ExtensionSet),
	}
	for _, cat := range categories {
		normalized := Category{Name: cat.Name, Extensions: make([]string, 0, len(cat.Extensions))}
		for _, ext := range cat.Extensions {
			ext = normalizeExt(ext)
			if owner, ok := c.byExt[ext]; ok {
				return nil, fmt.Errorf("%w: %s is in %q and %q", ErrDuplicateExtension, ext, owner, cat.Name)
			}
			c.byExt[ext] = cat.Name
			c.index[ext] = struct{}{}
			normalized.Extensions = append(normalized.Extensions, ext)
		}
		c.categories = append(c.categories, normalized)
	}
	return c, nil
}

func MustNew(categories []Category) *Catalog {
	c, err := New(categories)
	if err != nil {
		panic(err)
	}
	return c
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// CategoryOf returns the category claiming ext, or Other.
func (c *Catalog) CategoryOf(ext string) string {
	if name, ok := c.byExt[strings.ToLower(ext)]; ok {
		return name
	}
	return Other
}

// CategoryOfFile classifies a file by the extension of its name.
func (c *Catalog) CategoryOfFile(name string) string {
	return c.CategoryOf(Ext(name))
}

// Index returns the union of all category extensions.
func (c *Catalog) Index() ExtensionSet {
	return c.index
}

// Extensions returns the allow-list for the given category names. Unknown
// names contribute nothing.
func (c *Catalog) Extensions(names ...string) ExtensionSet {
	selected := make(map[string]bool, len(names))
	for _, name := range names {
		selected[name] = true
	}
	set := make(ExtensionSet)
	for _, cat := range c.categories {
		if !selected[cat.Name] {
			continue
		}
		for _, ext := range cat.Extensions {
			set[ext] = struct{}{}
		}
	}
	return set
}

// Categories returns category names in table order.
func (c *Catalog) Categories() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Ext returns the lowercased extension of name including the dot, or "" when
// name has none.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
