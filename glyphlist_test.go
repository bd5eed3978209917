package inkwell

import (
	"image"
	"math"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/goitalic"
)

func newTestGlyphListBackend(t *testing.T) *GlyphListBackend {
	t.Helper()
	family, err := DefaultFontFamily()
	if err != nil {
		t.Fatalf("DefaultFontFamily: %v", err)
	}
	b := NewGlyphListBackend(family)
	t.Cleanup(b.Dispose)
	return b
}

func TestGlyphList_PrepareOncePerSize(t *testing.T) {
	b := newTestGlyphListBackend(t)

	for _, size := range []int{12, 12, 12} {
		if err := b.Prepare(size); err != nil {
			t.Fatalf("Prepare: %v", err)
		}
	}
	if got := b.Stats().ListsPrepared; got != 1 {
		t.Errorf("ListsPrepared = %d, want 1", got)
	}

	if err := b.Prepare(18); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	s := b.Stats()
	if s.ListsPrepared != 2 || s.Sizes != 2 {
		t.Errorf("stats = %+v, want 2 lists for 2 sizes", s)
	}
}

func TestGlyphList_ListBases(t *testing.T) {
	b := newTestGlyphListBackend(t)

	if _, ok := b.ListBase(12); ok {
		t.Error("ListBase before Prepare should report false")
	}
	_ = b.Prepare(12)
	_ = b.Prepare(18)

	first, _ := b.ListBase(12)
	second, _ := b.ListBase(18)
	if first != 1 {
		t.Errorf("first base = %d, want 1", first)
	}
	if second != first+glyphListStride {
		t.Errorf("second base = %d, want %d", second, first+glyphListStride)
	}
}

func TestGlyphList_ControlCodesHaveNoImage(t *testing.T) {
	b := newTestGlyphListBackend(t)
	_ = b.Prepare(12)
	l, _ := b.lists.lookup(12)

	for _, r := range []rune{0, '\t', '\n', 0x7f, ' '} {
		if l.glyphs[r].image != nil {
			t.Errorf("glyph %q has an image, want none", r)
		}
	}
	if l.glyphs['A'].image == nil || l.glyphs['A'].advance <= 0 {
		t.Errorf("glyph 'A' = %+v, want an image with positive advance", l.glyphs['A'])
	}
}

func TestGlyphList_MeasureEmpty(t *testing.T) {
	b := newTestGlyphListBackend(t)
	w, h, err := b.Measure(12, "")
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if w != 0 || h != 0 {
		t.Errorf("Measure(\"\") = (%f, %f), want (0, 0)", w, h)
	}
}

func TestGlyphList_MeasureSumsAdvances(t *testing.T) {
	b := newTestGlyphListBackend(t)
	w, h, err := b.Measure(16, "AB")
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	l, _ := b.lists.lookup(16)
	want := l.glyphs['A'].advance + l.glyphs['B'].advance
	if math.Abs(w-want) > 1e-9 {
		t.Errorf("width = %f, want %f", w, want)
	}
	if h <= 0 {
		t.Errorf("height = %f, want positive", h)
	}
}

func TestGlyphList_MultiLine(t *testing.T) {
	b := newTestGlyphListBackend(t)
	w1, h1, _ := b.Measure(14, "abcdef")
	w2, h2, _ := b.Measure(14, "ab\nabcdef")

	if math.Abs(w1-w2) > 1e-9 {
		t.Errorf("multi-line width = %f, want widest line %f", w2, w1)
	}
	l, _ := b.lists.lookup(14)
	if math.Abs(h1-l.lineHeight) > 1e-9 {
		t.Errorf("one-line height = %f, want line height %f", h1, l.lineHeight)
	}
	if math.Abs(h2-2*l.lineHeight) > 1e-9 {
		t.Errorf("two-line height = %f, want %f", h2, 2*l.lineHeight)
	}
}

func TestGlyphList_HeightMatchesRasterBackend(t *testing.T) {
	b := newTestGlyphListBackend(t)
	rb := newTestRasterBackend(t)

	for _, s := range []string{"abc", "abc\nabc\nabc"} {
		_, gh, err := b.Measure(14, s)
		if err != nil {
			t.Fatalf("Measure: %v", err)
		}
		_, rh, err := rb.Measure(14, s)
		if err != nil {
			t.Fatalf("Measure: %v", err)
		}
		lines := float64(strings.Count(s, "\n") + 1)
		if math.Abs(gh-rh) > 1.5*lines {
			t.Errorf("%q: glyph list height %f, raster height %f", s, gh, rh)
		}
	}
}

func TestGlyphList_ImagesCoverInk(t *testing.T) {
	italic, err := LoadFontFamily("Go Italic", goitalic.TTF)
	if err != nil {
		t.Fatalf("LoadFontFamily: %v", err)
	}
	regular, _ := DefaultFontFamily()

	for _, family := range []*FontFamily{regular, italic} {
		b := NewGlyphListBackend(family)
		if err := b.Prepare(48); err != nil {
			t.Fatalf("Prepare: %v", err)
		}
		l, _ := b.lists.lookup(48)

		for _, r := range "fjJgWy" {
			g := l.glyphs[r]
			if g.image == nil {
				t.Fatalf("%s %q: no image", family.Name(), r)
			}
			bounds := g.image.Bounds()
			frame := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
			ink := glyphInk(string(r), l.face).Add(image.Pt(int(g.originX), int(g.originY)))
			if !ink.In(frame) {
				t.Errorf("%s %q: ink %v outside image %v", family.Name(), r, ink, frame)
			}
		}

		if family == italic {
			f := l.glyphs['f']
			if w := f.image.Bounds().Dx(); w <= int(math.Ceil(f.advance))+4 {
				t.Errorf("italic f image width %d, want room for ink past advance %f", w, f.advance)
			}
		}
		b.Dispose()
	}
}

func TestGlyphList_FoldsToASCII(t *testing.T) {
	b := newTestGlyphListBackend(t)

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"café", "cafe"},
		{"naïve", "naive"},
		{"ﬁle", "file"},
		{"日本", ""},
		{"x→y", "xy"},
	}
	for _, tt := range tests {
		if got := b.fold(tt.in); got != tt.want {
			t.Errorf("fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if !b.dropped['日'] || !b.dropped['→'] {
		t.Errorf("dropped = %v, want 日 and → recorded", b.dropped)
	}
}

func TestGlyphList_FoldedEmptyLayout(t *testing.T) {
	b := newTestGlyphListBackend(t)
	l, err := b.Layout(Run{Content: "日本", Size: 12})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if w, h := l.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = (%f, %f), want (0, 0)", w, h)
	}
}

func TestGlyphList_WriterReplaysGlyphs(t *testing.T) {
	b := newTestGlyphListBackend(t)
	r := NewRendererWithBackend(Config{}, b)
	target := ebiten.NewImage(128, 64)
	defer target.Deallocate()
	r.BeginFrame(target)

	w := NewTextWriter(r, 4, 4, 12, false, "")
	w.String("Hi there")
	if w.Err() != nil {
		t.Fatalf("Err() = %v", w.Err())
	}

	// Space has no image, so 7 of the 8 characters are replayed.
	if got := r.Stats().Backend.GlyphsReplayed; got != 7 {
		t.Errorf("GlyphsReplayed = %d, want 7", got)
	}
	if got := r.Stats().DrawCalls; got != 1 {
		t.Errorf("DrawCalls = %d, want 1", got)
	}

	width, _, _ := b.Measure(12, "Hi there")
	if x, _ := w.Pen(); math.Abs(x-(4+width)) > 1e-9 {
		t.Errorf("penX = %f, want %f", x, 4+width)
	}
}

func TestGlyphList_DisposeReleasesLists(t *testing.T) {
	b := newTestGlyphListBackend(t)
	_ = b.Prepare(10)
	_ = b.Prepare(20)
	b.Dispose()
	if got := b.Stats().Sizes; got != 0 {
		t.Errorf("Sizes after Dispose = %d, want 0", got)
	}
}
