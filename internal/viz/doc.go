// Package viz renders grown trees in the terminal.
//
//   - [Canvas]: braille pixel canvas with per-cell pens for coloring
//   - [Camera] and [Render3D]: perspective wireframe projection
//   - [Model]: Bubble Tea viewer that grows a tree cycle by cycle
//   - [Picker]: preset menu in front of the viewer
//
// # Key Bindings
//
//	Space - Pause/Resume growth
//	R     - Restart from cycle 0
//	N     - Next seed
//	[ ]   - Step back/forward one cycle
//	x/y/z - Rotate (shift reverses)
//	+ -   - Zoom
//	T     - Cycle color themes
package viz
