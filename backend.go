package inkwell

import "fmt"

// Run is one string submitted for drawing, with the writer's size and
// alignment resolved.
type Run struct {
	Content  string
	Size     int // device point size
	Centered bool
	Color    Color
}

// Backend turns runs into drawable layouts. Implementations own their
// per-size glyph resources and release them in Dispose.
//
// Backends are not safe for concurrent use.
type Backend interface {
	// Kind reports which pipeline the backend implements.
	Kind() BackendKind
	// Prepare creates the glyph resources for size if they do not exist yet.
	Prepare(size int) error
	// Layout measures run and produces everything needed to draw it. The
	// caller must call Release on the result once it has been drawn.
	Layout(run Run) (Layout, error)
	// Stats reports cumulative resource counters.
	Stats() BackendStats
	// Dispose releases every resource the backend created.
	Dispose()
}

// Layout is a measured run ready to be drawn.
type Layout interface {
	// Size is the glyph run's bounding box, independent of alignment.
	Size() (width, height float64)
	// Draw draws the run with its left edge at x and its top at y on the
	// renderer's target.
	Draw(r *Renderer, x, y float64)
	// Release frees resources borrowed for this layout. Safe to call twice.
	Release()
}

// BackendStats holds cumulative counters for a backend.
type BackendStats struct {
	Sizes            int // distinct sizes with live glyph resources
	ListsPrepared    int // glyph lists rasterized (glyph list backend)
	GlyphsReplayed   int // glyph images drawn (glyph list backend)
	TexturesCreated  int // text textures uploaded (raster backend)
	TexturesReleased int // text textures deallocated (raster backend)
}

// LiveTextures is the number of uploaded textures not yet released.
func (s BackendStats) LiveTextures() int {
	return s.TexturesCreated - s.TexturesReleased
}

// NewBackend builds the backend selected by cfg.Backend for family.
func NewBackend(cfg Config, family *FontFamily) (Backend, error) {
	cfg = cfg.withDefaults()
	switch cfg.Backend {
	case BackendGlyphList:
		return NewGlyphListBackend(family), nil
	case BackendRasterTexture:
		return NewRasterizedTextureBackend(family, cfg.MaxTextureSize), nil
	default:
		return nil, fmt.Errorf("inkwell: unsupported backend %v", cfg.Backend)
	}
}

// emptyLayout is returned for runs that measure to nothing.
type emptyLayout struct{}

func (emptyLayout) Size() (float64, float64)         { return 0, 0 }
func (emptyLayout) Draw(*Renderer, float64, float64) {}
func (emptyLayout) Release()                         {}
