package inkwell

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ColorTween animates all four channels of a Color. Create one with
// TweenColor, call Update(dt) each frame and draw with the returned color,
// typically through Text.WithColor.
//
// There is no global animation manager; callers drive Update themselves.
type ColorTween struct {
	tweens  [4]*gween.Tween
	current Color
	Done    bool
}

// TweenColor creates a ColorTween from one color to another over duration
// seconds using the easing function.
func TweenColor(from, to Color, duration float32, fn ease.TweenFunc) *ColorTween {
	t := &ColorTween{current: from}
	t.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	t.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	t.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	t.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	return t
}

// Update advances the tween by dt seconds and returns the current color.
func (t *ColorTween) Update(dt float32) Color {
	if t.Done {
		return t.current
	}
	var ch [4]uint8
	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(dt)
		ch[i] = channel(val)
		if !finished {
			allDone = false
		}
	}
	t.current = Color{ch[0], ch[1], ch[2], ch[3]}
	t.Done = allDone
	return t.current
}

// Color returns the current color without advancing.
func (t *ColorTween) Color() Color {
	return t.current
}

// Reset rewinds the tween to its starting color.
func (t *ColorTween) Reset() {
	var ch [4]uint8
	for i, tw := range t.tweens {
		val, _ := tw.Set(0)
		ch[i] = channel(val)
	}
	t.current = Color{ch[0], ch[1], ch[2], ch[3]}
	t.Done = false
}

// channel rounds an eased value back to an 8-bit channel. Easing functions
// that overshoot are clamped.
func channel(v float32) uint8 {
	return uint8(math.Round(math.Min(255, math.Max(0, float64(v)))))
}
