package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/procpart/render"
	"gonum.org/v1/plot/cmpimg"
)

// imgDelta is a normalized parameter describing how close the matching
// should be (0: perfect match, 1: loose match).
const imgDelta = 0

func TestPreviewDeterministic(t *testing.T) {
	const width, height = 160, 90
	model, err := render.RenderAll(octagonRenderer(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	paths := [2]string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")}
	for _, path := range paths {
		err = render.SavePreview(path, model, width, height, render.DefaultView)
		if err != nil {
			t.Fatal(err)
		}
	}
	img, err := render.Preview(model, width, height, render.DefaultView)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		t.Fatalf("got image size %v", b)
	}
	b1, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	b2, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1, b2, imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Fatal("preview of the same model differs")
	}
}

func TestPreviewErrors(t *testing.T) {
	if _, err := render.Preview(nil, 10, 10, render.DefaultView); err == nil {
		t.Fatal("expected error for empty model")
	}
	model, _ := render.RenderAll(octagonRenderer(1, 1))
	if _, err := render.Preview(model, 0, 10, render.DefaultView); err == nil {
		t.Fatal("expected error for zero width")
	}
}
