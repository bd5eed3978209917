package inkwell

import (
	"fmt"
	"strconv"
)

// Text is an immutable string and color pair. Its size and alignment come
// from the TextWriter it is drawn against.
type Text struct {
	content string
	color   Color
}

// NewText returns a Text drawing s in color c.
func NewText(s string, c Color) Text {
	return Text{content: s, color: c}
}

// Int returns a Text drawing the decimal form of v.
func Int(v int64, c Color) Text {
	return Text{content: strconv.FormatInt(v, 10), color: c}
}

// Uint returns a Text drawing the decimal form of v.
func Uint(v uint64, c Color) Text {
	return Text{content: strconv.FormatUint(v, 10), color: c}
}

// Float returns a Text drawing v with prec digits after the decimal point.
func Float(v float64, prec int, c Color) Text {
	return Text{content: strconv.FormatFloat(v, 'f', prec, 64), color: c}
}

// Textf returns a Text drawing the fmt.Sprintf result of format and args.
func Textf(c Color, format string, args ...any) Text {
	return Text{content: fmt.Sprintf(format, args...), color: c}
}

// Content returns the string.
func (t Text) Content() string {
	return t.content
}

// Color returns the draw color.
func (t Text) Color() Color {
	return t.color
}

// WithColor returns a copy of t drawn in c.
func (t Text) WithColor(c Color) Text {
	t.color = c
	return t
}
