// Package viz shows a morph session in the terminal using Bubble Tea.
//
// Each character cell holds two pixels drawn as an upper half block with
// the top pixel as foreground and the bottom pixel as background, so a
// 48×48 canvas needs 48 columns and 24 rows.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Replay with fresh wobble phases
//	G     - Toggle GIF recording
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
