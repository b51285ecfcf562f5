// Package export renders a board to a PNG image.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"dboard/figure"
	"dboard/geometry"
	"dboard/scene"
)

// ErrEmptyBoard is returned when there is nothing to render.
var ErrEmptyBoard = errors.New("nothing to export")

const (
	// padding is the margin around the board content, in board units.
	padding  = 20.0
	fontSize = 14.0
)

var background = color.White

// Render draws every cell of the store, in paint order, into an image
// sized to the content bounds plus a margin.
func Render(s *scene.Store) (image.Image, error) {
	bounds, ok := contentBounds(s)
	if !ok {
		return nil, ErrEmptyBoard
	}
	bounds.Min.X -= padding
	bounds.Min.Y -= padding
	bounds.Max.X += padding
	bounds.Max.Y += padding

	dc := gg.NewContext(int(bounds.Width()), int(bounds.Height()))
	dc.SetColor(background)
	dc.Clear()

	face, err := regularFace(fontSize)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	origin := bounds.Min
	for cell := range s.InOrder() {
		if e := cell.AsEdge(); e != nil {
			drawEdge(dc, e, origin)
			continue
		}
		drawShapes(dc, cell.Shapes, origin)
	}
	return dc.Image(), nil
}

// WritePNG renders the store and writes the encoded image to w.
func WritePNG(w io.Writer, s *scene.Store) error {
	img, err := Render(s)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).EncodePNG(w)
}

// SavePNG renders the store to a file.
func SavePNG(filename string, s *scene.Store) error {
	img, err := Render(s)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).SavePNG(filename)
}

// contentBounds returns the union of all cell bounds.
func contentBounds(s *scene.Store) (geometry.Rect, bool) {
	var bounds geometry.Rect
	first := true
	for cell := range s.InOrder() {
		b := cell.Bounds()
		if first {
			bounds = b
			first = false
			continue
		}
		bounds = geometry.RectFromPoints(
			geometry.Pt(min(bounds.Min.X, b.Min.X), min(bounds.Min.Y, b.Min.Y)),
			geometry.Pt(max(bounds.Max.X, b.Max.X), max(bounds.Max.Y, b.Max.Y)),
		)
	}
	return bounds, !first
}

func regularFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawShapes(dc *gg.Context, shapes []figure.Shape, origin geometry.Point) {
	for _, s := range shapes {
		switch v := s.(type) {
		case *figure.Rect:
			drawRect(dc, v, origin)
		case *figure.Text:
			drawText(dc, v, origin)
		case *figure.LineSegment:
			drawPolyline(dc, v.Points[:], v.Stroke, origin)
		case *figure.Path:
			drawPolyline(dc, v.Points, v.Stroke, origin)
		case *figure.QuadraticBezier:
			dc.SetColor(v.Stroke.Color)
			dc.SetLineWidth(v.Stroke.Width)
			dc.MoveTo(v.Points[0].X-origin.X, v.Points[0].Y-origin.Y)
			dc.QuadraticTo(
				v.Points[1].X-origin.X, v.Points[1].Y-origin.Y,
				v.Points[2].X-origin.X, v.Points[2].Y-origin.Y,
			)
			dc.Stroke()
		case *figure.CubicBezier:
			dc.SetColor(v.Stroke.Color)
			dc.SetLineWidth(v.Stroke.Width)
			dc.MoveTo(v.Points[0].X-origin.X, v.Points[0].Y-origin.Y)
			dc.CubicTo(
				v.Points[1].X-origin.X, v.Points[1].Y-origin.Y,
				v.Points[2].X-origin.X, v.Points[2].Y-origin.Y,
				v.Points[3].X-origin.X, v.Points[3].Y-origin.Y,
			)
			dc.Stroke()
		case *figure.Composite:
			drawShapes(dc, v.Shapes, origin)
		}
	}
}

func drawRect(dc *gg.Context, r *figure.Rect, origin geometry.Point) {
	x := r.Rect.Min.X - origin.X
	y := r.Rect.Min.Y - origin.Y
	dc.DrawRectangle(x, y, r.Rect.Width(), r.Rect.Height())
	dc.SetColor(r.Fill)
	dc.FillPreserve()
	dc.SetColor(r.Stroke.Color)
	dc.SetLineWidth(r.Stroke.Width)
	dc.Stroke()
}

func drawText(dc *gg.Context, t *figure.Text, origin geometry.Point) {
	if t.Content == "" {
		return
	}
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(t.Content, t.Pos.X-origin.X, t.Pos.Y-origin.Y, 0.5, 0.5)
}

func drawPolyline(dc *gg.Context, points []geometry.Point, stroke figure.Stroke, origin geometry.Point) {
	if len(points) < 2 {
		return
	}
	dc.SetColor(stroke.Color)
	dc.SetLineWidth(stroke.Width)
	for i := 0; i < len(points)-1; i++ {
		dc.DrawLine(
			points[i].X-origin.X, points[i].Y-origin.Y,
			points[i+1].X-origin.X, points[i+1].Y-origin.Y,
		)
		dc.Stroke()
	}
}

func drawEdge(dc *gg.Context, e *scene.Edge, origin geometry.Point) {
	drawPolyline(dc, e.Points, e.Stroke, origin)
	drawWedge(dc, e.StartArrowhead(), e.Stroke.Color, origin)
	drawWedge(dc, e.EndArrowhead(), e.Stroke.Color, origin)
}

// drawWedge fills a closed arrowhead polygon.
func drawWedge(dc *gg.Context, wedge []geometry.Point, col color.Color, origin geometry.Point) {
	if len(wedge) < 3 {
		return
	}
	dc.SetColor(col)
	dc.MoveTo(wedge[0].X-origin.X, wedge[0].Y-origin.Y)
	for _, p := range wedge[1:] {
		dc.LineTo(p.X-origin.X, p.Y-origin.Y)
	}
	dc.ClosePath()
	dc.Fill()
}
