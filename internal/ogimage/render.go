// Package ogimage renders 1200×630 OpenGraph cards for site content.
package ogimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Card geometry and colors.
const (
	Width    = 1200
	Height   = 630
	PadY     = 55
	PadX     = 70
	lineGap  = 12
	ellipsis = "..."
)

var (
	Background = color.RGBA{0x18, 0x18, 0x1b, 0xff}
	Foreground = color.RGBA{0xf4, 0xf4, 0xf5, 0xff}
)

type face struct {
	font.Face
	// scale is an integer upscale for bitmap faces; 1 for vector faces.
	scale int
}

func (f face) lineHeight() int {
	m := f.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	if m.Height.Ceil() > h {
		h = m.Height.Ceil()
	}
	return h * f.scale
}

func (f face) width(s string) int {
	return font.MeasureString(f.Face, s).Ceil() * f.scale
}

// Renderer draws cards. The zero value is not usable; call NewRenderer.
type Renderer struct {
	title  face
	author face
}

// Option configures a Renderer.
type Option func(*Renderer) error

// WithFont replaces the built-in bitmap face with a TrueType or OpenType
// font.
func WithFont(data []byte) Option {
	return func(r *Renderer) error {
		f, err := opentype.Parse(data)
		if err != nil {
			return fmt.Errorf("parsing font: %w", err)
		}
		title, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 64, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return fmt.Errorf("title face: %w", err)
		}
		author, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return fmt.Errorf("author face: %w", err)
		}
		r.title = face{Face: title, scale: 1}
		r.author = face{Face: author, scale: 1}
		return nil
	}
}

// NewRenderer creates a renderer using basicfont unless WithFont is given.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		title:  face{Face: basicfont.Face7x13, scale: 5},
		author: face{Face: basicfont.Face7x13, scale: 3},
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Render draws title from the top and author along the bottom edge and
// returns the PNG bytes.
func (r *Renderer) Render(title, author string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, xdraw.Src)

	maxW := Width - 2*PadX

	bottom := Height - PadY
	if author = strings.TrimSpace(author); author != "" {
		line := fit(r.author, author, maxW)
		top := bottom - r.author.lineHeight()
		drawLine(img, r.author, PadX, top, line)
		bottom = top - lineGap
	}

	step := r.title.lineHeight() + lineGap
	maxLines := (bottom - PadY + lineGap) / step
	lines := wrap(r.title, strings.TrimSpace(title), maxW)
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = fit(r.title, lines[maxLines-1]+" "+ellipsis, maxW)
	}
	for i, l := range lines {
		drawLine(img, r.title, PadX, PadY+i*step, l)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// wrap breaks s into lines no wider than maxW, splitting on spaces. A
// single word wider than maxW is truncated.
func wrap(f face, s string, maxW int) []string {
	var lines []string
	var cur string
	for _, w := range strings.Fields(s) {
		next := w
		if cur != "" {
			next = cur + " " + w
		}
		if f.width(next) <= maxW {
			cur = next
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
		}
		cur = fit(f, w, maxW)
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// fit trims s from the right until it fits, marking the cut with an
// ellipsis.
func fit(f face, s string, maxW int) string {
	if f.width(s) <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if c := strings.TrimRight(string(runes), " ") + ellipsis; f.width(c) <= maxW {
			return c
		}
	}
	return ""
}

// drawLine renders s with its top-left corner at (x, top). Bitmap faces
// are drawn at native size and scaled up with nearest-neighbour so the
// glyph edges stay crisp.
func drawLine(dst *image.RGBA, f face, x, top int, s string) {
	if s == "" {
		return
	}
	m := f.Metrics()
	w := font.MeasureString(f.Face, s).Ceil()
	h := f.lineHeight() / f.scale

	src := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(Foreground),
		Face: f.Face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(s)

	rect := image.Rect(x, top, x+w*f.scale, top+h*f.scale)
	xdraw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), xdraw.Over, nil)
}
