// Package viz renders mechanisms and trajectories in the terminal.
//
//   - [Canvas]: braille pixel canvas for the kinematic chain view
//   - [Camera]: 3D-to-2D projection of link endpoints
//   - [PlotSeries]: ascii line charts of recorded trajectories
//
// The interactive front end lives in the tui package; viz is the drawing
// layer underneath it and is also usable from plain commands.
package viz
