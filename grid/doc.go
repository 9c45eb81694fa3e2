// Package grid models the immutable 2D lattice of trap sites addressed by an
// acousto-optic deflector (AOD).
//
// What:
//
//   - Grid holds the resulting site coordinates of each axis. Spacing and
//     origin are derived views of the same data.
//   - Sub-views by explicit index lists (View) or regular slices (Slice).
//   - Pure transforms: Shift, Scale and Repeat (tiling a unit cell into a
//     larger trap array).
//   - Structural equality: two grids are equal when their site positions are
//     bit-identical, regardless of how they were built.
//
// Why:
//
//   - Waypoints of a move, trap zones of an architecture and the sub-grid of
//     currently active tones are all Grids; keeping them immutable lets traces
//     share them freely.
//
// Complexity:
//
//   - New, FromPositions, View, Slice, Shift, Scale: O(W+H).
//   - Repeat: O(nx·W + ny·H).
//   - Equal, Key: O(W+H).
//
// Errors:
//
//   - ErrEmptyAxis:       an axis would have no sites.
//   - ErrNaNInf:          a coordinate is NaN or ±Inf.
//   - ErrIndexOutOfRange: a view index is outside the grid.
//   - ErrBadStep:         a slice step is < 1.
//   - ErrBadRepeat:       a repeat count is < 1.
//   - ErrShapeMismatch:   two grids that must share a shape do not.
package grid
