package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

var (
	// ErrInvalidImageData is returned when input bytes cannot be decoded to
	// a raster.
	ErrInvalidImageData = errors.New("invalid image data")

	// ErrUnsupportedFormat is returned for files whose extension is not an
	// accepted image type. The check happens before any bytes are read.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// supportedExtensions maps accepted file extensions to format names.
var supportedExtensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

// SupportedExtension reports whether path has an accepted image extension.
// The comparison is case-insensitive.
func SupportedExtension(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Decode decodes encoded image bytes, applying any EXIF orientation.
//
// Returns the decoded image and the format name reported by the registered
// decoder ("png", "jpeg", "gif", "bmp", "tiff" or "webp"). Any decoding
// failure is wrapped in ErrInvalidImageData.
func Decode(data []byte) (image.Image, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImageData, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", fmt.Errorf("%w: empty %dx%d image", ErrInvalidImageData, cfg.Width, cfg.Height)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImageData, err)
	}
	return img, format, nil
}

// DefaultCacheEntries is the capacity of a cache made by NewImageCache.
const DefaultCacheEntries = 32

// cached is a decoded raster together with the file state it was read from.
type cached struct {
	img     image.Image
	modTime time.Time
	size    int64
}

// fresh reports whether the entry still describes the file behind fi.
func (e cached) fresh(fi os.FileInfo) bool {
	return e.size == fi.Size() && e.modTime.Equal(fi.ModTime())
}

// ImageCache holds decoded rasters keyed by the path they were loaded from,
// so repeated tool calls against one file decode it once. A file that has
// been rewritten since it was cached (different size or modification time)
// is decoded again. Safe for concurrent use.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cached
	limit  int
}

// NewImageCache returns an empty cache holding up to DefaultCacheEntries
// rasters.
func NewImageCache() *ImageCache {
	return NewImageCacheSize(DefaultCacheEntries)
}

// NewImageCacheSize returns an empty cache holding up to n rasters. When a
// new raster would exceed n, an arbitrary older one is dropped. n < 1 is
// treated as 1.
func NewImageCacheSize(n int) *ImageCache {
	if n < 1 {
		n = 1
	}
	return &ImageCache{images: make(map[string]cached), limit: n}
}

// Load returns the raster stored at path, decoding it unless an up to date
// copy is cached. Paths are used verbatim as keys.
//
// The extension is checked first (ErrUnsupportedFormat); read failures wrap
// the os error, and undecodable bytes wrap ErrInvalidImageData.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.entry(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) entry(path string) (cached, error) {
	if !SupportedExtension(path) {
		return cached{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	fi, err := os.Stat(path)
	if err != nil {
		return cached{}, fmt.Errorf("failed to open image: %w", err)
	}

	c.mu.RLock()
	e, ok := c.images[path]
	c.mu.RUnlock()
	if ok && e.fresh(fi) {
		return e, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cached{}, fmt.Errorf("failed to open image: %w", err)
	}
	img, _, err := Decode(data)
	if err != nil {
		return cached{}, fmt.Errorf("failed to decode image: %w", err)
	}
	e = cached{img: img, modTime: fi.ModTime(), size: fi.Size()}

	c.mu.Lock()
	c.store(path, e)
	c.mu.Unlock()
	return e, nil
}

// store must be called with c.mu held for writing.
func (c *ImageCache) store(path string, e cached) {
	if _, ok := c.images[path]; !ok && len(c.images) >= c.limit {
		for k := range c.images {
			delete(c.images, k)
			break
		}
	}
	c.images[path] = e
}

// Len returns the number of cached rasters.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear drops every cached raster.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cached)
	c.mu.Unlock()
}

// Evict drops the raster cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes an input raster for the image_load tool.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is taken from the file extension, not sniffed from the bytes.
	Format string `json:"format"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha is true when transparent pixels can affect the foreground
	// mask, since they are composited over white first.
	HasAlpha bool `json:"has_alpha"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// formatOf names the format for path's extension, or "unknown".
func formatOf(path string) string {
	if f, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return "unknown"
}

// pixelLayout reports the per-channel depth and alpha support of img's
// concrete type.
func pixelLayout(img image.Image) (depth string, alpha bool) {
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64:
		return "16-bit", true
	case *image.Gray16:
		return "16-bit", false
	case *image.RGBA, *image.NRGBA:
		return "8-bit", true
	}
	return "8-bit", false
}

// LoadImageInfo loads path through cache and reports its size and pixel
// layout. The file size is the one observed when the raster was decoded.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.entry(path)
	if err != nil {
		return nil, err
	}
	depth, alpha := pixelLayout(e.img)
	b := e.img.Bounds()
	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        formatOf(path),
		ColorDepth:    depth,
		HasAlpha:      alpha,
		FileSizeBytes: e.size,
	}, nil
}

// DimensionsResult is the image_dimensions tool result. Its width and height
// are also the viewBox of the SVG that image_vectorize would produce.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads path through cache and returns its pixel size.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	size := img.Bounds().Size()
	return &DimensionsResult{Width: size.X, Height: size.Y}, nil
}
