/*
Copyright 2024 The Hooya Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package imagepipe decodes raster images, corrects their orientation
// from EXIF metadata, and derives a ladder of downscaled JPEG thumbnails.
package imagepipe

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/jpeg"
	"os"

	_ "image/gif"
	_ "image/png"

	_ "github.com/nf/cr2"
	"github.com/rwcarlsen/goexif/exif"
	xdraw "golang.org/x/image/draw"

	"go4.org/syncutil"
)

// Ladder is the fixed set of long-edge targets (in pixels) a thumbnail is
// generated for. Rungs larger than the source image's long edge are
// skipped; thumbnails are never upscaled.
var Ladder = []int{320, 640, 960, 1280, 1920}

// ErrUnsupported is returned by Decode when the source's format is not one
// the image pipeline can decode.
var ErrUnsupported = errors.New("hooya: unsupported image format")

// resizeSem bounds the peak memory used by concurrently running decodes.
// Each acquisition is weighted by an estimate of the image's decoded size
// in bytes and is held only for the duration of Decode; Thumbnail's resize
// does not acquire it.
var resizeSem = syncutil.NewSem(512 << 20)

// Decoded holds a decoded, orientation-corrected image together with the
// EXIF metadata it was decoded with, if any.
type Decoded struct {
	Image image.Image
	Exif  *exif.Exif // nil if the source carried no readable EXIF
}

// Decode reads a full image from path, applying any EXIF orientation
// correction before returning it. EXIF is read on a best-effort basis: a
// source with no EXIF, or malformed EXIF, is decoded verbatim and Exif is
// left nil.
func Decode(path string) (*Decoded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// EXIF is read on a best-effort basis: malformed or absent metadata
	// never fails the decode, it just leaves the image unrotated.
	ex, _ := exif.Decode(bytes.NewReader(raw))

	if cfg, _, err := image.DecodeConfig(bytes.NewReader(raw)); err == nil {
		ramSize := int64(cfg.Width) * int64(cfg.Height) * 4
		if err := resizeSem.Acquire(ramSize); err != nil {
			return nil, err
		}
		defer resizeSem.Release(ramSize)
	}

	im, _, err := image.Decode(bytes.NewReader(raw))
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupported
	}
	if err != nil {
		return nil, err
	}

	im = correctOrientation(im, orientationOf(ex))
	return &Decoded{Image: im, Exif: ex}, nil
}

// orientationOf returns the EXIF orientation tag value, defaulting to 1
// (identity) when ex is nil or the tag is absent or malformed.
func orientationOf(ex *exif.Exif) int {
	if ex == nil {
		return 1
	}
	tag, err := ex.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// correctOrientation rotates im per the EXIF orientation values hooya
// supports: 1 (identity), 3 (180deg), 6 (90deg clockwise), 8 (270deg
// clockwise). Any other value (mirrored variants, or no EXIF) is treated
// as identity, matching the documented behavior for ambiguous input.
func correctOrientation(im image.Image, orientation int) image.Image {
	switch orientation {
	case 3:
		return rotate180(im)
	case 6:
		return rotate90CW(im)
	case 8:
		return rotate270CW(im)
	default:
		return im
	}
}

func rotate90CW(im image.Image) image.Image {
	b := im.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(h-1-y, x, im.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

func rotate270CW(im image.Image) image.Image {
	b := im.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(y, w-1-x, im.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

func rotate180(im image.Image) image.Image {
	b := im.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(w-1-x, h-1-y, im.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

// Thumbnail writes a JPEG thumbnail of im to outPath, scaled so its long
// edge equals longEdge while preserving aspect ratio. If im's long edge is
// already <= longEdge, im is never upscaled: it is re-encoded at its
// native size instead. It returns the thumbnail's final width and height.
func Thumbnail(im image.Image, outPath string, longEdge int) (width, height int, err error) {
	b := im.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	dstW, dstH := scaledDims(srcW, srcH, longEdge)

	var scaled image.Image = im
	if dstW != srcW || dstH != srcH {
		rgba := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
		xdraw.CatmullRom.Scale(rgba, rgba.Bounds(), im, b, draw.Src, nil)
		scaled = rgba
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	if err := jpeg.Encode(f, scaled, &jpeg.Options{Quality: 90}); err != nil {
		return 0, 0, err
	}
	return dstW, dstH, nil
}

// scaledDims computes the output dimensions for a resize targeting
// longEdge on the image's long edge, never upscaling.
func scaledDims(srcW, srcH, longEdge int) (int, int) {
	long := srcW
	if srcH > long {
		long = srcH
	}
	if long <= longEdge {
		return srcW, srcH
	}
	if srcW >= srcH {
		h := int(float64(srcH) * float64(longEdge) / float64(srcW))
		if h < 1 {
			h = 1
		}
		return longEdge, h
	}
	w := int(float64(srcW) * float64(longEdge) / float64(srcH))
	if w < 1 {
		w = 1
	}
	return w, longEdge
}

// RequiredRungs returns the ladder rungs that should be generated for a
// source image with the given long edge: every rung at or below it. A
// source smaller than the smallest rung yields no rungs at all; this
// package never upscales.
func RequiredRungs(srcLongEdge int) []int {
	var rungs []int
	for _, l := range Ladder {
		if l <= srcLongEdge {
			rungs = append(rungs, l)
		}
	}
	return rungs
}
