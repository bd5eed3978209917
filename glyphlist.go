package inkwell

import (
	"errors"
	"image"
	"log/slog"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/text/unicode/norm"
)

const (
	glyphRangeSize  = 128 // code points 0-127
	glyphListStride = 130 // list numbers reserved per size
)

// listGlyph is one replayable entry of a glyph list. The image covers both
// the advance box and the glyph's ink; the box's top-left corner sits at
// (originX, originY) inside it.
type listGlyph struct {
	image            *ebiten.Image // nil for glyphs without ink (space, control codes)
	advance          float64
	originX, originY float64
}

// glyphList holds every glyph of the range rasterized at one size.
type glyphList struct {
	face       *text.GoTextFace
	base       int // first list number assigned to this size
	lineHeight float64
	glyphs     [glyphRangeSize]listGlyph
}

// GlyphListBackend rasterizes the 0-127 glyph range once per size into
// glyph images and replays one image per character on every draw. Runes
// outside the range are folded to their ASCII base form when one exists and
// dropped otherwise.
type GlyphListBackend struct {
	family   *FontFamily
	lists    *glyphCache[*glyphList]
	nextBase int
	dropped  map[rune]bool
	stats    BackendStats
}

// NewGlyphListBackend creates a glyph list backend drawing with family.
func NewGlyphListBackend(family *FontFamily) *GlyphListBackend {
	b := &GlyphListBackend{
		family:   family,
		nextBase: 1,
		dropped:  make(map[rune]bool),
	}
	b.lists = newGlyphCache("glyphlist", b.rasterizeList, b.releaseList)
	return b
}

// Kind returns BackendGlyphList.
func (b *GlyphListBackend) Kind() BackendKind { return BackendGlyphList }

// Prepare rasterizes the glyph range at size unless it already exists.
func (b *GlyphListBackend) Prepare(size int) error {
	_, err := b.lists.getOrCreate(size)
	return err
}

// ListBase returns the first list number assigned to size, if prepared.
func (b *GlyphListBackend) ListBase(size int) (int, bool) {
	l, ok := b.lists.lookup(size)
	if !ok {
		return 0, false
	}
	return l.base, true
}

// Measure returns the bounding box of s at size, without alignment.
func (b *GlyphListBackend) Measure(size int, s string) (width, height float64, err error) {
	l, err := b.lists.getOrCreate(size)
	if err != nil {
		return 0, 0, err
	}
	gl := b.layout(l, b.fold(s), false)
	return gl.width, gl.height, nil
}

// Layout measures run against the glyph list for its size.
func (b *GlyphListBackend) Layout(run Run) (Layout, error) {
	l, err := b.lists.getOrCreate(run.Size)
	if err != nil {
		return nil, err
	}
	content := b.fold(run.Content)
	if content == "" {
		return emptyLayout{}, nil
	}
	return b.layout(l, content, run.Centered), nil
}

// Stats reports cumulative counters.
func (b *GlyphListBackend) Stats() BackendStats {
	s := b.stats
	s.Sizes = b.lists.len()
	return s
}

// Dispose deallocates every glyph image of every size.
func (b *GlyphListBackend) Dispose() {
	b.lists.dispose()
}

func (b *GlyphListBackend) rasterizeList(size int) (*glyphList, error) {
	if b.family == nil {
		return nil, errors.New("no font family")
	}
	face := &text.GoTextFace{Source: b.family.source, Size: float64(size)}
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap
	if lh <= 0 {
		return nil, ErrLayout
	}

	l := &glyphList{face: face, base: b.nextBase, lineHeight: lh}
	lineBox := int(math.Ceil(lh))
	for r := rune(0); r < glyphRangeSize; r++ {
		if r < ' ' || r == 0x7f {
			continue // control codes keep a zero entry
		}
		s := string(r)
		g := listGlyph{advance: text.Advance(s, face)}
		ink := glyphInk(s, face)
		if r != ' ' && !ink.Empty() {
			box := image.Rect(0, 0, int(math.Ceil(g.advance)), lineBox).Union(ink)
			g.originX, g.originY = float64(-box.Min.X), float64(-box.Min.Y)
			img := ebiten.NewImage(box.Dx(), box.Dy())
			op := &text.DrawOptions{}
			op.GeoM.Translate(g.originX, g.originY)
			text.Draw(img, s, face, op)
			g.image = img
		}
		l.glyphs[r] = g
	}

	b.nextBase += glyphListStride
	b.stats.ListsPrepared++
	return l, nil
}

// glyphInk returns the pixel bounds of the ink s draws, relative to the
// top-left corner of its line box.
func glyphInk(s string, face *text.GoTextFace) image.Rectangle {
	var ink image.Rectangle
	for _, g := range text.AppendGlyphs(nil, s, face, nil) {
		if g.Image == nil {
			continue
		}
		b := g.Image.Bounds()
		ink = ink.Union(image.Rect(0, 0, b.Dx(), b.Dy()).Add(image.Pt(int(g.X), int(g.Y))))
	}
	return ink
}

func (b *GlyphListBackend) releaseList(_ int, l *glyphList) {
	for i := range l.glyphs {
		if img := l.glyphs[i].image; img != nil {
			img.Deallocate()
			l.glyphs[i].image = nil
		}
	}
}

// fold maps s into the glyph range. Runes with a compatibility decomposition
// keep their ASCII base (é becomes e); anything else is dropped with a
// one-time warning per rune.
func (b *GlyphListBackend) fold(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= glyphRangeSize {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range norm.NFKD.String(s) {
		if r < glyphRangeSize {
			sb.WriteRune(r)
			continue
		}
		if isCombining(r) || b.dropped[r] {
			continue
		}
		b.dropped[r] = true
		Logger().Warn("inkwell: rune outside glyph range dropped", slog.String("rune", string(r)))
	}
	return sb.String()
}

// isCombining reports whether r is a combining diacritical mark left over
// from decomposition.
func isCombining(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
}

// glyphLine is one newline-separated line of a glyph layout.
type glyphLine struct {
	start, end int // byte range in content
	width      float64
}

// glyphLayout is a folded string measured against a glyph list.
type glyphLayout struct {
	backend  *GlyphListBackend
	list     *glyphList
	content  string
	lines    []glyphLine
	width    float64
	height   float64
	centered bool
}

func (b *GlyphListBackend) layout(l *glyphList, content string, centered bool) *glyphLayout {
	gl := &glyphLayout{backend: b, list: l, content: content, centered: centered}
	if content == "" {
		return gl
	}

	start := 0
	var lineW float64
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c == '\n' {
			gl.lines = append(gl.lines, glyphLine{start: start, end: i, width: lineW})
			gl.width = max(gl.width, lineW)
			start = i + 1
			lineW = 0
			continue
		}
		lineW += l.glyphs[c].advance
	}
	gl.lines = append(gl.lines, glyphLine{start: start, end: len(content), width: lineW})
	gl.width = max(gl.width, lineW)

	gl.height = l.lineHeight * float64(len(gl.lines))
	return gl
}

func (gl *glyphLayout) Size() (float64, float64) {
	return gl.width, gl.height
}

// Draw replays one glyph image per character, starting at the top-left
// corner (x, y) of the line box.
func (gl *glyphLayout) Draw(r *Renderer, x, y float64) {
	target := r.Target()
	if target == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.ColorScale = r.Color().colorScale()
	op.Blend = r.BlendMode().EbitenBlend()

	for li, line := range gl.lines {
		penX := x
		if gl.centered {
			penX += (gl.width - line.width) / 2
		}
		lineY := math.Round(y + float64(li)*gl.list.lineHeight)
		for i := line.start; i < line.end; i++ {
			g := &gl.list.glyphs[gl.content[i]]
			if g.image != nil {
				op.GeoM.Reset()
				op.GeoM.Translate(math.Round(penX)-g.originX, lineY-g.originY)
				target.DrawImage(g.image, &op)
				gl.backend.stats.GlyphsReplayed++
			}
			penX += g.advance
		}
	}
	r.frame.drawCalls++
}

// Release is a no-op: glyph lists outlive individual draws.
func (gl *glyphLayout) Release() {}
