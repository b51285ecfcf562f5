package export

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"dboard/geometry"
	"dboard/scene"
)

func TestRenderEmptyBoard(t *testing.T) {
	if _, err := Render(scene.NewStore()); !errors.Is(err, ErrEmptyBoard) {
		t.Fatalf("err = %v, want ErrEmptyBoard", err)
	}
}

func TestRenderSizesToContent(t *testing.T) {
	s := scene.NewStore()
	s.Insert(scene.NewRectCell(s.NextID(), geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(100, 50)), "hello"))

	img, err := Render(s)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 140 || b.Dy() != 90 {
		t.Errorf("image is %dx%d, want 140x90 (content plus margin)", b.Dx(), b.Dy())
	}
}

func TestWritePNGEncodes(t *testing.T) {
	s := scene.NewStore()
	a := scene.NewRectCell(s.NextID(), geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(40, 40)), "a")
	s.Insert(a)
	edge := scene.NewEdge(scene.Bound{Cell: a.ID, Index: 4}, scene.Free{At: geometry.Pt(120, 60)})
	s.Insert(scene.NewEdgeCell(s.NextID(), edge))
	s.RecomputeEdges()

	var buf bytes.Buffer
	if err := WritePNG(&buf, s); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not a decodable png: %v", err)
	}
}
