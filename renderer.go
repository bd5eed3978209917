package inkwell

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer is the drawing context text writers draw through. It supplies the
// target image, the screen-space offset applied to writer coordinates, the
// active draw color and blend mode, and owns the backend with its glyph
// resources.
//
// A Renderer is not safe for concurrent use. Use it from the goroutine that
// runs the game's Draw.
type Renderer struct {
	cfg     Config
	family  *FontFamily
	backend Backend

	target           *ebiten.Image
	offsetX, offsetY float64
	color            Color
	blend            BlendMode

	frame  frameStats
	closed bool
}

// NewRenderer builds a renderer and the backend selected by cfg.
func NewRenderer(cfg Config) (*Renderer, error) {
	cfg = cfg.withDefaults()
	family := cfg.Font
	if family == nil {
		var err error
		family, err = DefaultFontFamily()
		if err != nil {
			return nil, err
		}
		cfg.Font = family
	}
	backend, err := NewBackend(cfg, family)
	if err != nil {
		return nil, err
	}
	return NewRendererWithBackend(cfg, backend), nil
}

// NewRendererWithBackend builds a renderer around an existing backend. The
// renderer takes ownership and disposes it in Close. cfg.Backend is ignored.
func NewRendererWithBackend(cfg Config, backend Backend) *Renderer {
	cfg = cfg.withDefaults()
	cfg.Backend = backend.Kind()
	return &Renderer{
		cfg:     cfg,
		family:  cfg.Font,
		backend: backend,
		color:   ColorWhite,
	}
}

// Config returns the renderer's configuration with defaults filled in.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Backend returns the backend the renderer draws through.
func (r *Renderer) Backend() Backend {
	return r.backend
}

// FontFamily returns the configured family, or nil for renderers built
// around a backend without one.
func (r *Renderer) FontFamily() *FontFamily {
	return r.family
}

// SetTarget sets the image subsequent draws render onto.
func (r *Renderer) SetTarget(target *ebiten.Image) {
	r.target = target
}

// Target returns the current target image.
func (r *Renderer) Target() *ebiten.Image {
	return r.target
}

// SetOffset sets the screen-space offset added to writer coordinates when a
// TextWriter is created. Existing writers keep the offset they started with.
func (r *Renderer) SetOffset(x, y float64) {
	r.offsetX, r.offsetY = x, y
}

// Offset returns the screen-space offset.
func (r *Renderer) Offset() (x, y float64) {
	return r.offsetX, r.offsetY
}

// SetColor sets the active draw color.
func (r *Renderer) SetColor(c Color) {
	r.color = c
}

// Color returns the active draw color.
func (r *Renderer) Color() Color {
	return r.color
}

// SetBlendMode sets the compositing mode used for text draws.
func (r *Renderer) SetBlendMode(b BlendMode) {
	r.blend = b
}

// BlendMode returns the compositing mode used for text draws.
func (r *Renderer) BlendMode() BlendMode {
	return r.blend
}

// measurer is implemented by backends that can measure without drawing.
type measurer interface {
	Measure(size int, s string) (width, height float64, err error)
}

// Measure returns the glyph run size of s at nominal size without drawing.
func (r *Renderer) Measure(s string, size int) (width, height float64, err error) {
	if r.closed {
		return 0, 0, ErrClosed
	}
	if size <= 0 {
		return 0, 0, resourceError("measure text", size, ErrInvalidSize)
	}
	deviceSize := r.cfg.DeviceSize(size)
	if m, ok := r.backend.(measurer); ok {
		return m.Measure(deviceSize, s)
	}
	l, err := r.backend.Layout(Run{Content: s, Size: deviceSize, Color: r.color})
	if err != nil {
		return 0, 0, err
	}
	defer l.Release()
	width, height = l.Size()
	return width, height, nil
}

// ready reports why the renderer cannot draw, if it cannot.
func (r *Renderer) ready() error {
	if r.closed {
		return ErrClosed
	}
	if r.target == nil {
		return ErrNoTarget
	}
	return nil
}

// Close disposes the backend and every glyph resource it created. Further
// draws fail with ErrClosed.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.backend.Dispose()
	r.target = nil
}
