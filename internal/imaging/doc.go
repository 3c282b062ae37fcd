// Package imaging provides the raster side of the vectorizer: decoding,
// caching, preprocessing and background separation.
//
// Images enter the pipeline as a RasterImage, an immutable 8-bit RGB buffer.
// Every stage that changes resolution or pixel values returns a new
// RasterImage rather than editing its input, so a single decoded image can be
// shared by concurrent conversions.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Regions use inclusive
// minimum and exclusive maximum bounds, as image.Rectangle does.
//
// # Preprocessing
//
// Preprocess optionally enlarges the image (4x by default) and sharpens it
// before segmentation. Upscaling goes through an Upscaler. A CommandUpscaler
// drives an external super-resolution executable; when it is missing or
// fails, Preprocess logs a warning and resamples with a Lanczos filter
// instead. The fallback is never reported as an error.
//
// # Background Separation
//
// Separate marks a pixel as white background only when all three channels
// are strictly above the threshold (240 by default). Everything else is
// foreground. The resulting ForegroundMask stores one bit per pixel.
//
// # Color Representation
//
// Colors are RGBColor values and are formatted as lower-case "#rrggbb"
// strings. ColorSum accumulates pixels for the mean colors used when
// classifying regions.
//
// # Error Handling
//
// Decoding failures wrap ErrInvalidImageData and files with an unaccepted
// extension fail with ErrUnsupportedFormat before they are read. Upscalers
// report ErrUpscaleModelUnavailable when their model cannot be used.
//
// # Thread Safety
//
// ImageCache and CommandUpscaler are safe for concurrent use. All other
// operations are stateless.
package imaging
