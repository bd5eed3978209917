// Package inkwell draws short styled strings for [Ebitengine] games through a
// layout cursor.
//
// A [TextWriter] keeps a pen position, a line anchor and the height of the
// tallest run on the current line. Each [Text] drawn against it is measured,
// placed at the pen (or centered on it) and drawn, and the pen advances for
// the next one. [TextWriter.NextLine] returns to the anchor and moves down.
//
// # Quick start
//
//	r, err := inkwell.NewRenderer(inkwell.Config{})
//	if err != nil { ... }
//	defer r.Close()
//
//	// in Draw(screen):
//	r.BeginFrame(screen)
//	w := inkwell.NewTextWriter(r, 10, 20, 12, false, "")
//	w.Draw(inkwell.NewText("Score: ", inkwell.ColorWhite)).
//		Draw(inkwell.Int(score, inkwell.Color{R: 120, G: 255, B: 140, A: 255})).
//		NextLine().
//		String("Level 3")
//	if err := w.Err(); err != nil { ... }
//	r.EndFrame()
//
// # Backends
//
// Two text pipelines implement [Backend] and are chosen with
// [Config.Backend]:
//
//   - [GlyphListBackend] rasterizes the 0-127 glyph range once per point
//     size and replays one glyph image per character on every draw. Cheap
//     per frame; text is folded to ASCII.
//   - [RasterizedTextureBackend] rasterizes each string into a bitmap,
//     uploads it as one texture, draws it and deallocates it. Full
//     per-string layout at the cost of one upload per draw.
//
// Glyph resources are created lazily, once per distinct point size, and
// released by [Renderer.Close].
//
// Point sizes are scaled to device sizes the same way for both backends:
// round(size * DPI / 72), with [Config.DPI] defaulting to 72.
//
// Renderers, backends and writers are not safe for concurrent use.
//
// [Ebitengine]: https://ebitengine.org
package inkwell
