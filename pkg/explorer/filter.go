package explorer

import (
	"strings"

	"github.com/datatug/netexplorer/pkg/catalog"
	"golang.org/x/text/cases"
)

// CategorySet is a set of enabled category names.
type CategorySet map[string]struct{}

func NewCategorySet(names ...string) CategorySet {
	set := make(CategorySet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// AllCategories enables every category of c.
func AllCategories(c *catalog.Catalog) CategorySet {
	return NewCategorySet(c.Categories()...)
}

func NoCategories() CategorySet {
	return CategorySet{}
}

func (s CategorySet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the enabled categories in the order c lists them.
func (s CategorySet) Names(c *catalog.Catalog) []string {
	var names []string
	for _, name := range c.Categories() {
		if s.Has(name) {
			names = append(names, name)
		}
	}
	return names
}

type FilterSpec struct {
	Enabled CategorySet
	Search  string
}

func (f FilterSpec) Apply(records []FileRecord) []FileRecord {
	return Filter(records, f.Enabled, f.Search)
}

// Filter returns, in their original order, the records whose category is
// enabled and whose name contains search, ignoring case. records is not modified.
func Filter(records []FileRecord, enabled CategorySet, search string) []FileRecord {
	fold := cases.Fold()
	term := fold.String(search)
	result := make([]FileRecord, 0, len(records))
	for _, r := range records {
		if !enabled.Has(r.Category) {
			continue
		}
		if term != "" && !strings.Contains(fold.String(r.Name), term) {
			continue
		}
		result = append(result, r)
	}
	return result
}
