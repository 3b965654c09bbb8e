// Package viz provides the terminal front end for the Hopf fibration.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of the main scene with the minimap in its corner
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Render3D]: perspective wireframe renderer driven by a scene camera
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	a b c   - Add a fiber family (prompts for angles)
//	d       - Clear every fiber
//	g / h   - Orbit focus / enable orbit controls
//	Arrows  - Orbit the focused camera
//	+ / -   - Zoom
//	ijkl    - Move the minimap cursor, Space adds its fiber
//	T       - Cycle color themes
//	R       - Toggle GIF recording
//	?       - Show help overlay
//
// # Recording
//
// The live view can record a session as a GIF animation with the R key.
// Recordings are saved to hopf.gif unless another path is configured.
package viz
