package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/webp"
)

const (
	DefaultSize = 320
	minSize     = 32
	maxSize     = 1024
)

type Options struct {
	// Size is the edge of the square thumbnail in pixels.
	Size int
	// Caption is drawn on a band along the bottom edge when non-empty.
	Caption string
}

var (
	fontOnce  sync.Once
	fontParse *truetype.Font
	fontErr   error
)

func captionFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontParse, fontErr = truetype.Parse(goregular.TTF)
	})
	return fontParse, fontErr
}

// Thumbnail decodes raw, center-crops it to a square, scales it and rounds
// the corners. The result is a PNG data URL suitable for an <img> src.
func Thumbnail(raw []byte, opts Options) (string, error) {
	png, err := Render(raw, opts)
	if err != nil {
		return "", err
	}
	return DataURL("image/png", png), nil
}

// Render is Thumbnail without the data URL encoding.
func Render(raw []byte, opts Options) ([]byte, error) {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	if size < minSize {
		size = minSize
	}
	if size > maxSize {
		size = maxSize
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("decode image: empty bounds")
	}
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	fs := float64(size)
	dc.DrawRoundedRectangle(0, 0, fs, fs, fs/12)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if caption := strings.TrimSpace(opts.Caption); caption != "" {
		if err := drawCaption(dc, caption, fs); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	if err := dc.EncodePNG(&out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}

func drawCaption(dc *gg.Context, caption string, size float64) error {
	f, err := captionFont()
	if err != nil {
		return fmt.Errorf("load caption font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size / 12,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	band := size / 6
	dc.SetColor(color.NRGBA{A: 150})
	dc.DrawRectangle(0, size-band, size, band)
	dc.Fill()

	dc.SetFontFace(face)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(caption, size/2, size-band/2, 0.5, 0.5)
	return nil
}

func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
