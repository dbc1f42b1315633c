package blog

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	ogWidth  = 1200
	ogHeight = 630
	// Text is drawn on a canvas ogScale times smaller and scaled up, which
	// keeps the fixed 7x13 face legible at full size.
	ogScale   = 3
	ogPadding = 16
)

var (
	ogBackground = color.RGBA{0xfe, 0xfb, 0xfb, 0xff}
	ogForeground = color.RGBA{0x28, 0x27, 0x28, 0xff}
	ogAccent     = color.RGBA{0x00, 0x6c, 0xac, 0xff}
)

// RenderOGImage draws a 1200x630 PNG with title, a byline and the site name.
func RenderOGImage(w io.Writer, title, byline, site string) error {
	cw, ch := ogWidth/ogScale, ogHeight/ogScale
	canvas := image.NewRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)

	border := image.Rect(ogPadding/2, ogPadding/2, cw-ogPadding/2, ch-ogPadding/2)
	drawFrame(canvas, border, ogForeground)

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 2
	maxChars := (cw - 2*ogPadding) / face.Advance
	y := ogPadding + lineHeight*2
	for _, line := range wrapText(title, maxChars, 4) {
		drawText(canvas, face, ogForeground, ogPadding, y, line)
		y += lineHeight
	}
	footerY := ch - ogPadding - 4
	byline = truncate(byline, maxChars/2)
	site = truncate(site, maxChars/2)
	drawText(canvas, face, ogAccent, ogPadding, footerY, byline)
	drawText(canvas, face, ogForeground, cw-ogPadding-len([]rune(site))*face.Advance, footerY, site)

	dst := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return png.Encode(w, dst)
}

// ResizeOGImage decodes src and scales it to cover 1200x630, cropping the
// overflow around the centre.
func ResizeOGImage(w io.Writer, src io.Reader) error {
	img, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return errors.New("empty image")
	}
	// Crop to the target aspect ratio before scaling.
	var crop image.Rectangle
	if b.Dx()*ogHeight > b.Dy()*ogWidth {
		cwidth := b.Dy() * ogWidth / ogHeight
		off := (b.Dx() - cwidth) / 2
		crop = image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+cwidth, b.Max.Y)
	} else {
		cheight := b.Dx() * ogHeight / ogWidth
		off := (b.Dy() - cheight) / 2
		crop = image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+cheight)
	}
	dst := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)
	return png.Encode(w, dst)
}

func (a *App) handlePostOG(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	var buf bytes.Buffer
	if err := RenderOGImage(&buf, post.Title, "by "+post.Author, a.Config.Site.Title); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// handleSiteOG serves the configured site image resized for OpenGraph, or a
// generated card when none is configured.
func (a *App) handleSiteOG(c echo.Context) error {
	var buf bytes.Buffer
	if name := a.Config.Site.OGImage; name != "" {
		f, err := os.Open(filepath.Join(a.Config.StaticDir, filepath.Clean("/"+name)))
		if err == nil {
			defer f.Close()
			if err := ResizeOGImage(&buf, f); err != nil {
				return err
			}
			return c.Blob(http.StatusOK, "image/png", buf.Bytes())
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if err := RenderOGImage(&buf, a.Config.Site.Title, a.Config.Site.Description, a.Config.Site.Author); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func drawText(dst draw.Image, face font.Face, col color.Color, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func drawFrame(dst draw.Image, r image.Rectangle, col color.Color) {
	src := image.NewUniform(col)
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, edge, src, image.Point{}, draw.Src)
	}
}

// wrapText splits s into at most maxLines lines of width chars, breaking on
// spaces and ending with "..." when truncated.
func wrapText(s string, width, maxLines int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		for len([]rune(word)) > width {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			r := []rune(word)
			lines = append(lines, string(r[:width]))
			word = string(r[width:])
		}
		switch {
		case cur == "":
			cur = word
		case len([]rune(cur))+1+len([]rune(word)) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = truncate(lines[maxLines-1]+" ...", width)
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
