// Package cloud arranges styled tags into a layout.
//
// [Arrange] measures every tag with a [fonts.Measurer] and places it with a
// [layout.Packer], in the order given. The result is a [Layout]: the placed
// tags plus the canvas they are drawn on. Layouts are plain data and
// round-trip through JSON, which is how they are cached and stored.
//
// # Canvas
//
// A layout with an explicit Width and Height is drawn on the canvas
// (0,0)-(Width,Height), so the packer's center is a position on that canvas.
// A layout without a size is drawn on a canvas centered on its tags, at
// least [MinWidth] x [MinHeight] and [Padding] pixels larger than the tags'
// extent.
package cloud
