package imagestore

import (
	"image"

	"golang.org/x/image/draw"
)

// MaxDimension bounds both sides of a stored image. Larger images are scaled
// down preserving aspect ratio; smaller images pass through untouched.
const MaxDimension = 1080

// Normalize scales img so that neither side exceeds MaxDimension.
func Normalize(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= MaxDimension && h <= MaxDimension {
		return img
	}
	nw, nh := boundedSize(w, h, MaxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// boundedSize shrinks (w, h) proportionally so the longer side equals max.
func boundedSize(w, h, max int) (int, int) {
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return max, nh
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return nw, max
}
