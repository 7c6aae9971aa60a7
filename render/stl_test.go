package render_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/procpart"
	"github.com/soypat/procpart/render"
)

func octagonRenderer(d, l float64) *render.MeshRenderer {
	m := procpart.ShapeParameters{Diameter: d, Length: l}.Metrics()
	return render.NewMeshRenderer(m.SideMesh(), m.CapMesh())
}

func TestMeshRendererSmallBuffer(t *testing.T) {
	r := octagonRenderer(1, 2)
	buf := make([]ms3.Triangle, 5)
	total := 0
	var err error
	for err == nil {
		var n int
		n, err = r.ReadTriangles(buf)
		total += n
	}
	if err != io.EOF {
		t.Fatal(err)
	}
	if total != 28 {
		t.Fatalf("want 28 triangles, got %d", total)
	}
	r.Reset()
	model, err := render.RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(model) != 28 {
		t.Fatalf("want 28 triangles after reset, got %d", len(model))
	}
}

func TestSTLCreateWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "octagon.stl")
	err := render.CreateSTL(path, octagonRenderer(2, 3))
	if err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.RenderAll(octagonRenderer(2, 3))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	n, err := render.WriteSTL(&b, model)
	if err != nil {
		t.Fatal(err)
	}
	if n != 84+50*len(model) || n != b.Len() {
		t.Fatalf("unexpected STL size %d for %d triangles", n, len(model))
	}
	if !bytes.Equal(b.Bytes(), bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}

	got, err := render.ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(model) {
		t.Fatalf("length of triangles written/read not equal: %d != %d", len(got), len(model))
	}
	for i := range model {
		if got[i] != model[i] {
			t.Errorf("triangle %d: got %v, want %v", i, got[i], model[i])
		}
	}

	mesh, err := fauxgl.LoadSTL(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != len(model) {
		t.Fatalf("fauxgl read %d triangles, want %d", len(mesh.Triangles), len(model))
	}
	box := mesh.BoundingBox()
	if box.Max.Y != 1.5 || box.Min.Y != -1.5 || box.Max.X != 1 {
		t.Errorf("unexpected bounds %+v", box)
	}
}

func TestReadSTLErrors(t *testing.T) {
	_, err := render.ReadSTL(bytes.NewReader(make([]byte, 10)))
	if err == nil {
		t.Fatal("expected error on short header")
	}
	_, err = render.ReadSTL(bytes.NewReader(make([]byte, 84)))
	if err == nil {
		t.Fatal("expected error on zero triangle count")
	}
	_, err = render.WriteSTL(io.Discard, nil)
	if err == nil {
		t.Fatal("expected error on empty model")
	}

	// Flip winding of a triangle without updating its normal.
	model, _ := render.RenderAll(octagonRenderer(1, 1))
	var b bytes.Buffer
	render.WriteSTL(&b, model)
	raw := b.Bytes()
	v1 := append([]byte(nil), raw[84+12:84+24]...)
	copy(raw[84+12:84+24], raw[84+24:84+36])
	copy(raw[84+24:84+36], v1)
	got, err := render.ReadSTL(bytes.NewReader(raw))
	if err == nil || len(got) != len(model) {
		t.Fatalf("expected normal mismatch with full output, got %d triangles and err=%v", len(got), err)
	}
	if errors.Is(err, io.EOF) {
		t.Fatal(err)
	}
}

func TestCreateSTLEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.stl")
	err := render.CreateSTL(path, render.NewMeshRenderer())
	if err == nil {
		t.Fatal("expected error for empty renderer")
	}
}
