package inkwell

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// lineHeightMultiple scales the face's line height. Single spacing.
const lineHeightMultiple = 1

// RasterizedTextureBackend rasterizes each string, with alignment, line
// height and color applied, into a CPU bitmap, uploads it as one texture and
// draws it as a single rectangle. The texture belongs to the Layout that
// produced it and is deallocated by Release.
type RasterizedTextureBackend struct {
	family         *FontFamily
	faces          *glyphCache[font.Face]
	maxTextureSize int
	stats          BackendStats

	// upload turns a finished bitmap into a GPU texture. Replaced in tests.
	upload func(img *image.RGBA) (*ebiten.Image, error)
}

// NewRasterizedTextureBackend creates a raster backend drawing with family.
// Bitmaps larger than maxTextureSize in either dimension fail to upload;
// zero or less uses 4096.
func NewRasterizedTextureBackend(family *FontFamily, maxTextureSize int) *RasterizedTextureBackend {
	if maxTextureSize <= 0 {
		maxTextureSize = defaultMaxTextureSize
	}
	b := &RasterizedTextureBackend{
		family:         family,
		maxTextureSize: maxTextureSize,
	}
	b.faces = newGlyphCache("texture", b.openFace, closeFace)
	b.upload = b.uploadImage
	return b
}

// Kind returns BackendRasterTexture.
func (b *RasterizedTextureBackend) Kind() BackendKind { return BackendRasterTexture }

// Prepare opens the face for size unless it is already open.
func (b *RasterizedTextureBackend) Prepare(size int) error {
	_, err := b.faces.getOrCreate(size)
	return err
}

// Measure returns the bitmap size s would rasterize to at size.
func (b *RasterizedTextureBackend) Measure(size int, s string) (width, height float64, err error) {
	face, err := b.faces.getOrCreate(size)
	if err != nil {
		return 0, 0, err
	}
	if s == "" {
		return 0, 0, nil
	}
	m, err := measureLines(face, s, size, false)
	if err != nil {
		return 0, 0, err
	}
	return float64(m.width), float64(m.height), nil
}

// TextTexture is an uploaded text bitmap. Width and Height are the
// typographic size of the run; the image may be larger when glyph ink
// overhangs that box, in which case the box's top-left corner sits at
// (OriginX, OriginY) inside the image.
type TextTexture struct {
	Image            *ebiten.Image
	Width, Height    float64
	OriginX, OriginY int
}

// RenderToTexture rasterizes s and uploads it. The returned Image is nil
// when s produces no pixels; otherwise the caller owns it and must
// deallocate it. On error no texture is left allocated.
func (b *RasterizedTextureBackend) RenderToTexture(s string, size int, centered bool, c Color) (TextTexture, error) {
	face, err := b.faces.getOrCreate(size)
	if err != nil {
		return TextTexture{}, err
	}
	if s == "" {
		return TextTexture{}, nil
	}

	m, err := measureLines(face, s, size, centered)
	if err != nil {
		return TextTexture{}, err
	}
	tt := TextTexture{
		Width:   float64(m.width),
		Height:  float64(m.height),
		OriginX: m.padLeft,
		OriginY: m.padTop,
	}
	bw, bh := m.bitmapSize()
	if m.width == 0 || m.height == 0 || bw == 0 || bh == 0 {
		return tt, nil
	}

	bitmap := image.NewRGBA(image.Rect(0, 0, bw, bh))
	d := font.Drawer{
		Dst:  bitmap,
		Src:  image.NewUniform(c.toNRGBA()),
		Face: face,
	}
	for i, line := range m.lines {
		d.Dot = m.dot(i)
		d.DrawString(line)
	}

	tex, err := b.upload(bitmap)
	if err != nil {
		if tex != nil {
			tex.Deallocate()
		}
		if !errors.Is(err, ErrGPU) {
			err = fmt.Errorf("%w: %w", ErrGPU, err)
		}
		return TextTexture{}, resourceError("upload text texture", size, err)
	}
	b.stats.TexturesCreated++
	Logger().Debug("inkwell: text texture created",
		slog.Int("width", bw), slog.Int("height", bh), slog.Int("size", size))
	tt.Image = tex
	return tt, nil
}

// Layout rasterizes run into a texture owned by the returned Layout.
func (b *RasterizedTextureBackend) Layout(run Run) (Layout, error) {
	if run.Content == "" {
		if err := b.Prepare(run.Size); err != nil {
			return nil, err
		}
		return emptyLayout{}, nil
	}
	tt, err := b.RenderToTexture(run.Content, run.Size, run.Centered, run.Color)
	if err != nil {
		return nil, err
	}
	return &textureLayout{backend: b, tex: tt}, nil
}

// Stats reports cumulative counters.
func (b *RasterizedTextureBackend) Stats() BackendStats {
	s := b.stats
	s.Sizes = b.faces.len()
	return s
}

// Dispose closes every cached face.
func (b *RasterizedTextureBackend) Dispose() {
	b.faces.dispose()
}

func (b *RasterizedTextureBackend) openFace(size int) (font.Face, error) {
	if b.family == nil {
		return nil, errors.New("no font family")
	}
	return opentype.NewFace(b.family.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func closeFace(size int, f font.Face) {
	if err := f.Close(); err != nil {
		Logger().Warn("inkwell: closing font face", slog.Int("size", size), slog.Any("err", err))
	}
}

// uploadImage is the default upload hook.
func (b *RasterizedTextureBackend) uploadImage(img *image.RGBA) (*ebiten.Image, error) {
	bounds := img.Bounds()
	if bounds.Dx() > b.maxTextureSize || bounds.Dy() > b.maxTextureSize {
		return nil, fmt.Errorf("%dx%d bitmap exceeds max texture size %d",
			bounds.Dx(), bounds.Dy(), b.maxTextureSize)
	}
	return ebiten.NewImageFromImage(img), nil
}

// lineMetrics is the measured frame of a multi-line string. width and
// height are the typographic box; the pads extend the bitmap to cover glyph
// ink outside that box.
type lineMetrics struct {
	lines      []string
	offsets    []fixed.Int26_6 // per-line x offset from alignment
	lineHeight fixed.Int26_6
	ascent     fixed.Int26_6
	width      int
	height     int

	padLeft, padTop, padRight, padBottom int
}

// measureLines lays s out without width or height constraints, one line per
// newline-separated segment, and finds the ink bounds of the result.
func measureLines(face font.Face, s string, size int, centered bool) (lineMetrics, error) {
	fm := face.Metrics()
	m := lineMetrics{
		lines:      strings.Split(s, "\n"),
		lineHeight: fm.Height * lineHeightMultiple,
		ascent:     fm.Ascent,
	}
	if m.lineHeight <= 0 {
		return lineMetrics{}, resourceError("layout text", size, ErrLayout)
	}

	n := len(m.lines)
	bounds := make([]fixed.Rectangle26_6, n)
	advances := make([]fixed.Int26_6, n)
	var maxAdvance fixed.Int26_6
	for i, line := range m.lines {
		bounds[i], advances[i] = font.BoundString(face, line)
		maxAdvance = max(maxAdvance, advances[i])
	}
	m.width = maxAdvance.Ceil()
	m.height = (m.lineHeight * fixed.Int26_6(n)).Ceil()

	m.offsets = make([]fixed.Int26_6, n)
	var ink fixed.Rectangle26_6
	for i := range m.lines {
		if centered {
			m.offsets[i] = (maxAdvance - advances[i]) / 2
		}
		if bounds[i].Empty() {
			continue
		}
		ink = ink.Union(bounds[i].Add(m.baseline(i)))
	}
	if !ink.Empty() {
		m.padLeft = max(0, -ink.Min.X.Floor())
		m.padTop = max(0, -ink.Min.Y.Floor())
		m.padRight = max(0, ink.Max.X.Ceil()-m.width)
		m.padBottom = max(0, ink.Max.Y.Ceil()-m.height)
	}
	return m, nil
}

// baseline returns the origin of line i relative to the typographic box.
func (m *lineMetrics) baseline(i int) fixed.Point26_6 {
	return fixed.Point26_6{X: m.offsets[i], Y: m.lineHeight*fixed.Int26_6(i) + m.ascent}
}

// dot returns the origin of line i inside the padded bitmap.
func (m *lineMetrics) dot(i int) fixed.Point26_6 {
	return m.baseline(i).Add(fixed.P(m.padLeft, m.padTop))
}

func (m *lineMetrics) bitmapSize() (int, int) {
	return m.padLeft + m.width + m.padRight, m.padTop + m.height + m.padBottom
}

// textureLayout borrows one uploaded texture for a single draw.
type textureLayout struct {
	backend *RasterizedTextureBackend
	tex     TextTexture
}

func (l *textureLayout) Size() (float64, float64) {
	return l.tex.Width, l.tex.Height
}

// Draw draws the texture as one rectangle with the run's typographic box at
// (x, y). Overhanging ink lands outside that box.
func (l *textureLayout) Draw(r *Renderer, x, y float64) {
	target := r.Target()
	if l.tex.Image == nil || target == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(math.Round(x)-float64(l.tex.OriginX), math.Round(y)-float64(l.tex.OriginY))
	op.Filter = ebiten.FilterLinear
	op.Blend = r.BlendMode().EbitenBlend()
	target.DrawImage(l.tex.Image, &op)
	r.frame.drawCalls++
}

// Release deallocates the texture.
func (l *textureLayout) Release() {
	if l.tex.Image == nil {
		return
	}
	l.tex.Image.Deallocate()
	l.tex.Image = nil
	l.backend.stats.TexturesReleased++
}
