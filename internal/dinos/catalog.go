// Package dinos loads the dinosaur catalog. Every call re-reads and
// re-validates the source; nothing is cached between calls.
package dinos

import "context"

// Catalog runs the load, parse, validate (and find) pipeline against a Source.
type Catalog struct {
	src Source
}

func NewCatalog(src Source) *Catalog {
	if src == nil {
		src = FileSource{Path: DefaultPath}
	}
	return &Catalog{src: src}
}

func (c *Catalog) Source() Source { return c.src }

// List returns every record in file order, or the first failure.
func (c *Catalog) List(ctx context.Context) ([]Record, error) {
	raw, err := Load(ctx, c.src)
	if err != nil {
		return nil, err
	}
	v, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return Validate(v)
}

// Lookup returns the first record named name (case-insensitive).
func (c *Catalog) Lookup(ctx context.Context, name string) (Record, error) {
	records, err := c.List(ctx)
	if err != nil {
		return Record{}, err
	}
	return Find(records, name)
}
