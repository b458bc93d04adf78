package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned when a category key is not in the catalog
	ErrUnknownCategory = errors.New("unknown query category")
	// ErrUnknownQuery is returned when a query key is not in its category
	ErrUnknownQuery = errors.New("unknown query")
)

// Dialect supplies the date-part expressions that differ between stores.
type Dialect struct {
	Name  string
	Year  func(col string) string
	Month func(col string) string
}

// Postgres is the dialect for the lib/pq store.
var Postgres = Dialect{
	Name:  "postgres",
	Year:  func(col string) string { return fmt.Sprintf("CAST(EXTRACT(YEAR FROM %s) AS INTEGER)", col) },
	Month: func(col string) string { return fmt.Sprintf("CAST(EXTRACT(MONTH FROM %s) AS INTEGER)", col) },
}

// SQLite is the dialect for the modernc.org/sqlite store.
var SQLite = Dialect{
	Name:  "sqlite",
	Year:  func(col string) string { return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", col) },
	Month: func(col string) string { return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", col) },
}

// DialectFor returns the dialect registered under a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case Postgres.Name:
		return Postgres, nil
	case SQLite.Name:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("no query dialect for driver %q", driver)
	}
}

// Definition is a named, read-only query
type Definition struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	SQL      string `json:"sql"`
}

type category struct {
	name    string
	queries []Definition
	byKey   map[string]Definition
}

// Catalog is an immutable category → query → SQL mapping.
type Catalog struct {
	dialect    string
	categories []*category
	byName     map[string]*category
}

// New builds the catalog for a dialect.
func New(d Dialect) *Catalog {
	c := &Catalog{
		dialect: d.Name,
		byName:  make(map[string]*category),
	}
	for _, group := range definitions(d) {
		cat := &category{name: group.name, byKey: make(map[string]Definition)}
		for _, q := range group.queries {
			def := Definition{Category: group.name, Key: q[0], SQL: q[1]}
			cat.queries = append(cat.queries, def)
			cat.byKey[def.Key] = def
		}
		c.categories = append(c.categories, cat)
		c.byName[cat.name] = cat
	}
	return c
}

// Dialect returns the name of the dialect the catalog was built for
func (c *Catalog) Dialect() string {
	return c.dialect
}

// Resolve returns the SQL text registered under category and key.
func (c *Catalog) Resolve(categoryKey, queryKey string) (string, error) {
	def, err := c.Lookup(categoryKey, queryKey)
	if err != nil {
		return "", err
	}
	return def.SQL, nil
}

// Lookup returns the full definition registered under category and key.
func (c *Catalog) Lookup(categoryKey, queryKey string) (Definition, error) {
	cat, ok := c.byName[categoryKey]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownCategory, categoryKey)
	}
	def, ok := cat.byKey[queryKey]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q in %q", ErrUnknownQuery, queryKey, categoryKey)
	}
	return def, nil
}

// Categories returns the category keys in display order.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.name)
	}
	return out
}

// Queries returns the query keys of a category in display order.
func (c *Catalog) Queries(categoryKey string) ([]string, error) {
	cat, ok := c.byName[categoryKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, categoryKey)
	}
	out := make([]string, 0, len(cat.queries))
	for _, q := range cat.queries {
		out = append(out, q.Key)
	}
	return out, nil
}

// Size returns the total number of queries
func (c *Catalog) Size() int {
	n := 0
	for _, cat := range c.categories {
		n += len(cat.queries)
	}
	return n
}
