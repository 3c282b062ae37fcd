package vectorize

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/ironsheep/image-vectorize/internal/contour"
	"github.com/ironsheep/image-vectorize/internal/imaging"
)

// Default option values.
const (
	DefaultWhiteThreshold = imaging.DefaultWhiteThreshold
	DefaultMinArea        = 100.0
	DefaultStrokeWidth    = 2.0
	DefaultSharpenFactor  = imaging.DefaultSharpenFactor
	DefaultUpscaleFactor  = imaging.DefaultUpscaleFactor

	// MaxUpscaleFactor bounds UpscaleFactor; working images grow with its
	// square.
	MaxUpscaleFactor = 8
)

var (
	// ErrNoForeground reports that nothing survived separation and
	// classification. Vectorize does not return it directly; see Result.Err.
	ErrNoForeground = errors.New("no foreground found")

	// ErrInvalidOptions is returned when Options fail validation.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrInvalidImageData is returned when input bytes cannot be decoded.
	ErrInvalidImageData = imaging.ErrInvalidImageData

	// ErrUnsupportedFormat is returned for files with an unaccepted extension.
	ErrUnsupportedFormat = imaging.ErrUnsupportedFormat

	// ErrUpscaleModelUnavailable is produced by upscalers and always
	// recovered by falling back to resampling.
	ErrUpscaleModelUnavailable = imaging.ErrUpscaleModelUnavailable

	// ErrDegenerateContour marks boundaries that are skipped while building
	// the contour forest.
	ErrDegenerateContour = contour.ErrDegenerateContour
)

// Options configures a conversion.
type Options struct {
	// WhiteThreshold is the channel value every channel must exceed for a
	// pixel (or a region mean) to count as background. Range 0-255.
	WhiteThreshold int `json:"white_threshold" toml:"white_threshold"`

	// MinArea discards boundaries enclosing fewer than this many pixels of
	// the input image, whatever the upscale factor.
	MinArea float64 `json:"min_area" toml:"min_area"`

	// StrokeWidth is the path stroke width before rescaling.
	StrokeWidth float64 `json:"stroke_width" toml:"stroke_width"`

	// SharpenFactor is the sharpness gain.
	SharpenFactor float64 `json:"sharpen_factor" toml:"sharpen_factor"`

	// EnableUpscale toggles upscaling before segmentation.
	EnableUpscale bool `json:"enable_upscale" toml:"enable_upscale"`

	// EnableSharpen toggles sharpening before segmentation.
	EnableSharpen bool `json:"enable_sharpen" toml:"enable_sharpen"`

	// UpscaleFactor is the enlargement used when EnableUpscale is set.
	UpscaleFactor int `json:"upscale_factor" toml:"upscale_factor"`

	// Upscaler is the preferred upscaler. Nil uses Lanczos resampling.
	Upscaler imaging.Upscaler `json:"-" toml:"-"`
}

// DefaultOptions returns the default conversion options.
func DefaultOptions() Options {
	return Options{
		WhiteThreshold: DefaultWhiteThreshold,
		MinArea:        DefaultMinArea,
		StrokeWidth:    DefaultStrokeWidth,
		SharpenFactor:  DefaultSharpenFactor,
		EnableUpscale:  true,
		EnableSharpen:  true,
		UpscaleFactor:  DefaultUpscaleFactor,
	}
}

// Validate checks that every option is in range. Errors wrap
// ErrInvalidOptions.
func (o Options) Validate() error {
	switch {
	case o.WhiteThreshold < 0 || o.WhiteThreshold > 255:
		return fmt.Errorf("%w: white_threshold must be 0-255, got %d", ErrInvalidOptions, o.WhiteThreshold)
	case o.MinArea < 0:
		return fmt.Errorf("%w: min_area must not be negative, got %g", ErrInvalidOptions, o.MinArea)
	case o.StrokeWidth < 0:
		return fmt.Errorf("%w: stroke_width must not be negative, got %g", ErrInvalidOptions, o.StrokeWidth)
	case o.SharpenFactor <= 0:
		return fmt.Errorf("%w: sharpen_factor must be positive, got %g", ErrInvalidOptions, o.SharpenFactor)
	case o.UpscaleFactor < 1 || o.UpscaleFactor > MaxUpscaleFactor:
		return fmt.Errorf("%w: upscale_factor must be 1-%d, got %d", ErrInvalidOptions, MaxUpscaleFactor, o.UpscaleFactor)
	}
	return nil
}

func (o Options) preprocessOptions() imaging.PreprocessOptions {
	return imaging.PreprocessOptions{
		EnableUpscale: o.EnableUpscale,
		EnableSharpen: o.EnableSharpen,
		SharpenFactor: o.SharpenFactor,
		UpscaleFactor: o.UpscaleFactor,
		Upscaler:      o.Upscaler,
		Logger:        Logger(),
	}
}

// Result is the outcome of a conversion.
type Result struct {
	// Document is the vector output. It is never nil; when nothing was found
	// it holds the canvas size and no paths.
	Document *Document

	// RegionCount is the number of paths in Document.
	RegionCount int
}

// Metadata summarizes a Result.
type Metadata struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	RegionCount int `json:"region_count"`
}

// Empty reports whether the conversion found nothing to vectorize.
func (r *Result) Empty() bool { return r.RegionCount == 0 }

// Err returns ErrNoForeground for an empty result and nil otherwise.
func (r *Result) Err() error {
	if r.Empty() {
		return ErrNoForeground
	}
	return nil
}

// Metadata returns the canvas size and region count.
func (r *Result) Metadata() Metadata {
	return Metadata{
		Width:       r.Document.Width,
		Height:      r.Document.Height,
		RegionCount: r.RegionCount,
	}
}

// Vectorize converts img into a vector document.
//
// The image is preprocessed, separated into foreground and background,
// traced into a contour forest and classified into regions, which are then
// rescaled to img's resolution and ordered largest first. An image with no
// foreground, or whose boundaries are all smaller than MinArea, produces an
// empty Result rather than an error.
//
// The only errors are invalid options. ctx is handed to the upscaler; the
// remaining stages run to completion.
func Vectorize(ctx context.Context, img *imaging.RasterImage, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := Logger()
	start := time.Now()

	working, scale := imaging.Preprocess(ctx, img, opts.preprocessOptions())
	logger.Debug("preprocessed",
		"width", working.Width(), "height", working.Height(),
		"scale", scale, "elapsed", time.Since(start))

	width, height := CanvasSize(working.Width(), working.Height(), scale)
	empty := &Result{Document: &Document{Width: width, Height: height, Paths: []VectorPath{}}}

	mask := imaging.Separate(working, opts.WhiteThreshold)
	if mask.Empty() {
		logger.Info("no foreground found", "width", width, "height", height)
		return empty, nil
	}
	logger.Debug("separated background", "foreground_pixels", mask.Count())

	stageStart := time.Now()
	roots := contour.BuildForest(mask)
	logger.Debug("built contour forest",
		"roots", len(roots), "nodes", contour.Count(roots), "elapsed", time.Since(stageStart))

	stageStart = time.Now()
	regions := ClassifyForest(roots, opts.MinArea, opts.WhiteThreshold, working, scale)
	logger.Debug("classified regions", "regions", len(regions), "elapsed", time.Since(stageStart))
	if len(regions) == 0 {
		logger.Info("no regions above minimum area", "min_area", opts.MinArea)
		return empty, nil
	}

	scaled := make([]ScaledRegion, len(regions))
	for i, r := range regions {
		scaled[i] = Rescale(r, scale)
	}
	doc := Assemble(scaled, width, height, opts.StrokeWidth*scale)

	logger.Info("vectorized image",
		"width", width, "height", height,
		"regions", len(doc.Paths), "elapsed", time.Since(start))

	return &Result{Document: doc, RegionCount: len(doc.Paths)}, nil
}

// VectorizeImage converts a decoded image. Transparent pixels are treated as
// white.
func VectorizeImage(ctx context.Context, img image.Image, opts Options) (*Result, error) {
	return Vectorize(ctx, imaging.FromImage(img), opts)
}

// VectorizeBytes decodes data and converts it. Undecodable input fails with
// ErrInvalidImageData before any stage runs.
func VectorizeBytes(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	img, _, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	return VectorizeImage(ctx, img, opts)
}

// VectorizeFile reads and converts the image at path. Files without an
// accepted image extension fail with ErrUnsupportedFormat without being
// read.
func VectorizeFile(ctx context.Context, path string, opts Options) (*Result, error) {
	if !imaging.SupportedExtension(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return VectorizeBytes(ctx, data, opts)
}

// Mask returns the foreground mask Vectorize would trace for img, at working
// resolution. It is meant for previewing the effect of WhiteThreshold.
func Mask(ctx context.Context, img *imaging.RasterImage, opts Options) (*imaging.ForegroundMask, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	working, _ := imaging.Preprocess(ctx, img, opts.preprocessOptions())
	return imaging.Separate(working, opts.WhiteThreshold), nil
}
