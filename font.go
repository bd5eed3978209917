package inkwell

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFontFamilyName names the family used when Config.Font is nil.
const DefaultFontFamilyName = "Go Regular"

// FontFamily is a parsed TrueType/OpenType font shared by both backends.
// The glyph list backend draws through Ebitengine's text/v2 source and the
// raster backend through the x/image opentype font.
type FontFamily struct {
	name   string
	source *text.GoTextFaceSource
	font   *opentype.Font
}

// LoadFontFamily parses raw TTF/OTF data under the given family name.
func LoadFontFamily(name string, data []byte) (*FontFamily, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("inkwell: font family %q: empty font data", name)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("inkwell: failed to parse font family %q: %w", name, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("inkwell: failed to parse font family %q: %w", name, err)
	}
	return &FontFamily{name: name, source: source, font: f}, nil
}

var defaultFamily = sync.OnceValues(func() (*FontFamily, error) {
	return LoadFontFamily(DefaultFontFamilyName, goregular.TTF)
})

// DefaultFontFamily returns the Go Regular family bundled with
// golang.org/x/image. It is parsed once and shared.
func DefaultFontFamily() (*FontFamily, error) {
	return defaultFamily()
}

// Name returns the family name given at load time.
func (f *FontFamily) Name() string {
	return f.name
}
