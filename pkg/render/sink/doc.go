// Package sink renders engine frames to files.
//
// Every renderer consumes an immutable scene.Frame, so the same frame can
// be written in several formats:
//
//   - [RenderSVG]: vector output drawn with svgo; labels are clipped to the
//     node's clip region
//   - [RenderPNG]: raster output drawn with gg
//   - [RenderJSON]: node positions, routed edge paths and fitted labels for
//     external tools
//
// All three honor the frame's view transform, so the output matches what an
// interactive surface showed at the same zoom and pan.
package sink
