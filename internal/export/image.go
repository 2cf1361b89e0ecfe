package export

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"

	"github.com/san-kum/prism/internal/renderer"
	"golang.org/x/image/draw"
)

// cellImage maps each cell to one pixel.
func cellImage(f renderer.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := range f.Height {
		for x := range f.Width {
			c := f.At(x, y).Color
			img.SetRGBA(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff})
		}
	}
	return img
}

// upscale blows the cell image up to the output pixel size.
func upscale(f renderer.Frame, opts Options) *image.RGBA {
	src := cellImage(f)
	dst := image.NewRGBA(image.Rect(0, 0, f.Width*opts.CellWidth, f.Height*opts.CellHeight))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func writePNG(w io.Writer, f renderer.Frame, opts Options) error {
	return png.Encode(w, upscale(f, opts))
}

func writeGIF(w io.Writer, frames []renderer.Frame, opts Options) error {
	anim := &gif.GIF{LoopCount: 0}
	delay := max(100/opts.FPS, 2)
	for _, f := range frames {
		img := upscale(f, opts)
		pal := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, img.Bounds(), img, image.Point{})
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, anim)
}
