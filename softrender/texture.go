package softrender

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/astroviz/skypaint/cache"
)

// ImageSource is implemented by textures that expose their decoded
// pixels. The software backend can only draw textures that do.
type ImageSource interface {
	Image() *image.RGBA
}

// ImageTexture wraps an in-memory image as a texture.
type ImageTexture struct {
	img *image.RGBA
}

func NewImageTexture(img *image.RGBA) *ImageTexture { return &ImageTexture{img: img} }

// Load implements skypaint.Texture.
func (t *ImageTexture) Load() bool { return t.img != nil }

// Image implements ImageSource.
func (t *ImageTexture) Image() *image.RGBA { return t.img }

// FileTexture is a texture decoded from a PNG or JPEG file. Decoded
// pixels are shared through a package cache, so loading the same path
// twice returns the same backing image.
type FileTexture struct {
	img *image.RGBA
}

var fileCache = cache.New[string, *image.RGBA](64, cache.StringHasher)

// NewFileTexture decodes the image at path, converting to RGBA when
// needed. Decode errors are returned, not cached.
func NewFileTexture(path string) (*FileTexture, error) {
	if img, ok := fileCache.Get(path); ok {
		return &FileTexture{img: img}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	img, ok := src.(*image.RGBA)
	if !ok {
		img = image.NewRGBA(src.Bounds())
		draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	}
	fileCache.Set(path, img)
	return &FileTexture{img: img}, nil
}

// Load implements skypaint.Texture.
func (t *FileTexture) Load() bool { return t.img != nil }

// Image implements ImageSource.
func (t *FileTexture) Image() *image.RGBA { return t.img }
