// Package snap derives alignment guides from a dashboard layout and
// adjusts dragged components onto them.
//
// Every stationary component contributes four candidate zones: a
// vertical zone at its left and right edge and a horizontal zone at its
// top and bottom edge, all in pixels. Zones at identical coordinates
// merge, keeping every contributing component id, so the caller can
// draw a single guide line per coordinate.
//
// Zone derivation is O(n) in the number of components and is intended
// to run only when the committed layout changes, not per pointer move.
// Resolving a drag proposal against the zone list is a pure function
// and is safe to call at pointer-move frequency.
package snap
