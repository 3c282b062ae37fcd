// Package vectorize converts raster images into flat-colored vector regions.
//
// A conversion runs six stages in order, each producing a new value from the
// previous one:
//
//  1. Preprocess: optional upscale and sharpen (imaging.Preprocess)
//  2. Separate: per-pixel white/foreground threshold (imaging.Separate)
//  3. Trace: nesting hierarchy of boundaries (contour.BuildForest)
//  4. Classify: hole or nested region for every child boundary (Classify)
//  5. Rescale: working coordinates back to input resolution (Rescale)
//  6. Assemble: paths ordered by descending area (Assemble)
//
// # Holes and Nested Regions
//
// A boundary inside a colored region is either an opening or a separate
// shape that happens to sit inside it, such as a dot in the middle of a
// ring. The classifier tells the two apart by averaging the input pixels the
// inner boundary encloses: if every channel of the mean is above the white
// threshold it is a hole and is cut out with the even-odd fill rule;
// otherwise it becomes a region of its own. Because regions are painted
// largest first, nested regions always land on top of the region around
// them.
//
// # Concurrency
//
// Vectorize keeps no state between calls and may be called concurrently.
// The package logger set with SetLogger is the only shared value.
//
// # Usage
//
//	res, err := vectorize.VectorizeFile(ctx, "logo.png", vectorize.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	if res.Empty() {
//	    return res.Err()
//	}
//	return res.Document.WriteSVG(w)
package vectorize
