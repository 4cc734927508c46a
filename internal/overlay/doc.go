// Package overlay draws inspection results.
//
// Renderer speaks to the Surface interface only. Canvas implements it on a
// gg raster context and encodes frames as transparent PNG overlays.
package overlay
