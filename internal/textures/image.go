package textures

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Decode reads a PNG, JPEG, WebP or BMP image.
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// DecodeFile opens and decodes path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Fit scales img down so neither side exceeds limit, keeping the aspect ratio. Images that
// already fit, and limit <= 0, are returned unchanged.
func Fit(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if limit <= 0 || (w <= limit && h <= limit) {
		return img
	}
	if w >= h {
		h = max(1, h*limit/w)
		w = limit
	} else {
		w = max(1, w*limit/h)
		h = limit
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// ToNRGBA returns img as non-premultiplied RGBA with bounds starting at (0,0).
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// ApplyAlphaMap returns a copy of base whose alpha comes from the green channel of alpha,
// the way an alpha map is read for a material. The map is stretched to base's size.
func ApplyAlphaMap(base, alpha image.Image) *image.NRGBA {
	out := ToNRGBA(base)
	if out == base {
		out = cloneNRGBA(out)
	}
	b := out.Bounds()
	var mask image.Image = alpha
	if alpha.Bounds().Dx() != b.Dx() || alpha.Bounds().Dy() != b.Dy() {
		scaled := image.NewNRGBA(b)
		xdraw.ApproxBiLinear.Scale(scaled, b, alpha, alpha.Bounds(), xdraw.Src, nil)
		mask = scaled
	}
	mb := mask.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			_, g, _, _ := mask.At(mb.Min.X+x, mb.Min.Y+y).RGBA()
			out.Pix[out.PixOffset(x, y)+3] = uint8(g >> 8)
		}
	}
	return out
}

func cloneNRGBA(n *image.NRGBA) *image.NRGBA {
	c := image.NewNRGBA(n.Rect)
	copy(c.Pix, n.Pix)
	return c
}
