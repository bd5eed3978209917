package inkwell

import (
	"log/slog"
	"strings"
)

// TextWriter is a layout cursor for a block of text drawn through a
// Renderer. Successive draws flow left to right from the pen position;
// NextLine returns the pen to the line anchor and moves it down.
//
// Draw and NextLine return the writer so calls can be chained:
//
//	w := inkwell.NewTextWriter(r, 10, 20, 12, false, "")
//	w.Draw(inkwell.NewText("Score: ", inkwell.ColorWhite)).Int(score).NextLine()
//	if err := w.Err(); err != nil { ... }
//
// The first error is kept; later calls do nothing and Err reports it. A
// failed draw leaves the cursor untouched.
type TextWriter struct {
	renderer *Renderer

	penX, penY     float64
	lineAnchorX    float64
	lastLineHeight float64
	pointSize      int
	deviceSize     int
	centered       bool

	err error
}

// NewTextWriter creates a writer anchored at (x, y) in logical units. The
// renderer's offset is added once, here. size is the nominal point size;
// family must be empty or name the renderer's configured font family.
func NewTextWriter(r *Renderer, x, y float64, size int, centered bool, family string) *TextWriter {
	ox, oy := r.Offset()
	w := &TextWriter{
		renderer:    r,
		penX:        x + ox,
		penY:        y + oy,
		lineAnchorX: x + ox,
		pointSize:   size,
		deviceSize:  r.Config().DeviceSize(size),
		centered:    centered,
	}
	r.frame.writers++

	switch {
	case r.closed:
		w.err = ErrClosed
	case size <= 0:
		w.err = resourceError("create text writer", size, ErrInvalidSize)
	case family != "" && r.family != nil && !strings.EqualFold(family, r.family.Name()):
		w.err = &ResourceError{Op: "select font family " + family, Err: ErrUnknownFamily}
	default:
		w.err = r.backend.Prepare(w.deviceSize)
	}
	if w.err != nil {
		Logger().Debug("inkwell: text writer failed", slog.Any("err", w.err))
	}
	return w
}

// NextLine moves the pen down by the tallest run drawn on the current line,
// or by the point size if nothing taller was drawn, and back to the anchor.
func (w *TextWriter) NextLine() *TextWriter {
	if w.err != nil {
		return w
	}
	w.penY += max(w.lastLineHeight, float64(w.pointSize))
	w.penX = w.lineAnchorX
	w.lastLineHeight = 0
	return w
}

// Draw measures t, positions it at the pen, draws it and advances the pen.
// Centered text is centered on the pen and does not advance it.
func (w *TextWriter) Draw(t Text) *TextWriter {
	if w.err != nil {
		return w
	}
	r := w.renderer
	r.frame.draws++
	if err := r.ready(); err != nil {
		w.fail(err)
		return w
	}

	l, err := r.backend.Layout(Run{
		Content:  t.content,
		Size:     w.deviceSize,
		Centered: w.centered,
		Color:    t.color,
	})
	if err != nil {
		w.fail(err)
		return w
	}
	defer l.Release()

	width, height := l.Size()
	w.lastLineHeight = max(w.lastLineHeight, height)

	drawX := w.penX
	if w.centered {
		drawX -= width / 2
	} else {
		w.penX += width
	}

	r.SetColor(t.color)
	l.Draw(r, drawX, w.penY)
	return w
}

// String draws s in white.
func (w *TextWriter) String(s string) *TextWriter {
	return w.Draw(NewText(s, ColorWhite))
}

// Int draws v in white.
func (w *TextWriter) Int(v int64) *TextWriter {
	return w.Draw(Int(v, ColorWhite))
}

func (w *TextWriter) fail(err error) {
	w.err = err
	w.renderer.frame.failures++
	Logger().Debug("inkwell: text draw failed", slog.Any("err", err))
}

// Err returns the first error encountered by the writer.
func (w *TextWriter) Err() error {
	return w.err
}

// Pen returns the current draw anchor in device pixels.
func (w *TextWriter) Pen() (x, y float64) {
	return w.penX, w.penY
}

// LineAnchor returns the x position NextLine returns to.
func (w *TextWriter) LineAnchor() float64 {
	return w.lineAnchorX
}

// LastLineHeight returns the tallest run drawn since the last line break.
func (w *TextWriter) LastLineHeight() float64 {
	return w.lastLineHeight
}

// PointSize returns the nominal point size.
func (w *TextWriter) PointSize() int {
	return w.pointSize
}

// DeviceSize returns the point size handed to the backend.
func (w *TextWriter) DeviceSize() int {
	return w.deviceSize
}

// Centered reports whether the writer centers text on the pen.
func (w *TextWriter) Centered() bool {
	return w.centered
}
