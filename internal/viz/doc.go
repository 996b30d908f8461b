// Package viz renders finished runs in the terminal.
//
//   - [Canvas]: Braille raster with path and ring drawing
//   - [RenderSummary]: lipgloss panel with termination, steps and metrics
//   - [Replay]: Bubble Tea model that animates a run over the horizon and
//     photon-sphere rings, with a radius chart
//
// # Key Bindings
//
//	Space - Pause/Resume
//	[ ]   - Step backward/forward (pauses)
//	+ -   - Change playback speed
//	R     - Restart
//	Q     - Quit
package viz
