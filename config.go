package inkwell

import (
	"fmt"
	"math"
	"strings"
)

// BackendKind selects the text pipeline a Renderer uses.
type BackendKind uint8

const (
	// BackendGlyphList rasterizes the 0-127 glyph range once per size and
	// replays one glyph image per character on every draw.
	BackendGlyphList BackendKind = iota
	// BackendRasterTexture rasterizes each string into a bitmap, uploads it
	// as a texture and draws it as a single rectangle.
	BackendRasterTexture
)

func (k BackendKind) String() string {
	switch k {
	case BackendGlyphList:
		return "glyphlist"
	case BackendRasterTexture:
		return "texture"
	default:
		return fmt.Sprintf("BackendKind(%d)", uint8(k))
	}
}

// ParseBackendKind parses the String form of a BackendKind. "glyphs" and
// "raster" are accepted as aliases.
func ParseBackendKind(s string) (BackendKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "glyphlist", "glyphs", "":
		return BackendGlyphList, nil
	case "texture", "raster":
		return BackendRasterTexture, nil
	}
	return 0, fmt.Errorf("inkwell: unknown backend %q", s)
}

const (
	defaultDPI            = 72
	defaultMaxTextureSize = 4096
)

// Config controls how a Renderer is built. The zero value is usable: it
// selects the glyph list backend with the default font family at 72 DPI.
type Config struct {
	// Backend selects the text pipeline.
	Backend BackendKind
	// Font is the single font family available to the renderer. Nil uses
	// DefaultFontFamily.
	Font *FontFamily
	// DPI scales nominal point sizes to device sizes for both backends.
	// Zero defaults to 72, which makes device size equal nominal size.
	DPI float64
	// MaxTextureSize bounds either dimension of an uploaded text texture.
	// Zero defaults to 4096.
	MaxTextureSize int
	// Debug logs per-frame stats at debug level from Renderer.EndFrame.
	Debug bool
}

// DefaultConfig returns the configuration used by a zero Config, with
// defaults filled in.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.DPI <= 0 {
		c.DPI = defaultDPI
	}
	if c.MaxTextureSize <= 0 {
		c.MaxTextureSize = defaultMaxTextureSize
	}
	return c
}

// DeviceSize converts a nominal point size to the device size handed to the
// backend: round(size * DPI / 72). Positive sizes never scale below 1.
func (c Config) DeviceSize(size int) int {
	if size <= 0 {
		return size
	}
	dpi := c.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}
	d := int(math.Round(float64(size) * dpi / 72))
	if d < 1 {
		d = 1
	}
	return d
}
