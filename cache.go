package inkwell

import "log/slog"

// glyphCache maps a device point size to a lazily created backend resource.
// Each size is created at most once and kept until dispose. Not safe for
// concurrent use; a renderer and its backend belong to one render thread.
type glyphCache[H any] struct {
	name    string // backend name, for logs
	entries map[int]H
	create  func(size int) (H, error)
	release func(size int, h H)
}

func newGlyphCache[H any](name string, create func(int) (H, error), release func(int, H)) *glyphCache[H] {
	return &glyphCache[H]{
		name:    name,
		entries: make(map[int]H),
		create:  create,
		release: release,
	}
}

// getOrCreate returns the resource for size, creating and registering it on
// a miss. A failed creation registers nothing.
func (c *glyphCache[H]) getOrCreate(size int) (H, error) {
	if h, ok := c.entries[size]; ok {
		return h, nil
	}
	var zero H
	if size <= 0 {
		return zero, resourceError("create glyph resource", size, ErrInvalidSize)
	}
	h, err := c.create(size)
	if err != nil {
		return zero, resourceError("create glyph resource", size, err)
	}
	c.entries[size] = h
	Logger().Debug("inkwell: glyph resource created",
		slog.String("backend", c.name), slog.Int("size", size), slog.Int("sizes", len(c.entries)))
	return h, nil
}

func (c *glyphCache[H]) lookup(size int) (H, bool) {
	h, ok := c.entries[size]
	return h, ok
}

func (c *glyphCache[H]) len() int {
	return len(c.entries)
}

// dispose releases every registered resource and empties the cache. Sizes
// requested afterwards are created again.
func (c *glyphCache[H]) dispose() {
	for size, h := range c.entries {
		if c.release != nil {
			c.release(size, h)
		}
		delete(c.entries, size)
	}
}
