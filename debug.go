package inkwell

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// frameStats holds per-frame counters, reset by BeginFrame.
type frameStats struct {
	start     time.Time
	writers   int
	draws     int
	drawCalls int
	failures  int
}

// Stats is a snapshot of renderer activity.
type Stats struct {
	Backend BackendStats

	// Per-frame counters since the last BeginFrame.
	Writers   int // text writers created
	Draws     int // Text values submitted
	DrawCalls int // backend draw calls issued (one per non-empty Text)
	Failures  int // draws that failed with an error
}

// BeginFrame resets per-frame counters and sets the target.
func (r *Renderer) BeginFrame(target *ebiten.Image) {
	r.frame = frameStats{start: time.Now()}
	r.SetTarget(target)
}

// EndFrame logs the frame's stats at debug level when Config.Debug is set.
func (r *Renderer) EndFrame() {
	if !r.cfg.Debug {
		return
	}
	r.LogStats()
}

// Stats returns backend counters and the current frame's counters.
func (r *Renderer) Stats() Stats {
	return Stats{
		Backend:   r.backend.Stats(),
		Writers:   r.frame.writers,
		Draws:     r.frame.draws,
		DrawCalls: r.frame.drawCalls,
		Failures:  r.frame.failures,
	}
}

// LogStats writes the current stats to the package logger.
func (r *Renderer) LogStats() {
	s := r.Stats()
	var elapsed time.Duration
	if !r.frame.start.IsZero() {
		elapsed = time.Since(r.frame.start)
	}
	Logger().Debug("inkwell: frame",
		slog.String("backend", r.backend.Kind().String()),
		slog.Duration("elapsed", elapsed),
		slog.Int("writers", s.Writers),
		slog.Int("draws", s.Draws),
		slog.Int("drawCalls", s.DrawCalls),
		slog.Int("failures", s.Failures),
		slog.Int("sizes", s.Backend.Sizes),
		slog.Int("glyphsReplayed", s.Backend.GlyphsReplayed),
		slog.Int("liveTextures", s.Backend.LiveTextures()),
	)
	if live := s.Backend.LiveTextures(); live > 0 {
		Logger().Warn("inkwell: text textures outstanding at end of frame", slog.Int("live", live))
	}
}
