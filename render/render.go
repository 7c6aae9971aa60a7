package render

import (
	"io"

	"github.com/soypat/glgl/math/ms3"
)

// Renderer produces triangles. ReadTriangles returns io.EOF once all
// triangles have been read.
type Renderer interface {
	ReadTriangles(t []ms3.Triangle) (int, error)
}

// Mesh is indexed triangle geometry.
type Mesh interface {
	NumTriangles() int
	Triangle(i int) ms3.Triangle
}

// MeshRenderer reads the triangles of one or more meshes in order.
type MeshRenderer struct {
	meshes []Mesh
	mesh   int // current mesh
	next   int // next triangle of current mesh
}

var _ Renderer = (*MeshRenderer)(nil)

// NewMeshRenderer returns a Renderer over the triangles of meshes.
func NewMeshRenderer(meshes ...Mesh) *MeshRenderer {
	return &MeshRenderer{meshes: meshes}
}

// ReadTriangles implements Renderer.
func (mr *MeshRenderer) ReadTriangles(dst []ms3.Triangle) (n int, err error) {
	for n < len(dst) && mr.mesh < len(mr.meshes) {
		m := mr.meshes[mr.mesh]
		if mr.next >= m.NumTriangles() {
			mr.mesh++
			mr.next = 0
			continue
		}
		dst[n] = m.Triangle(mr.next)
		mr.next++
		n++
	}
	if mr.mesh >= len(mr.meshes) {
		err = io.EOF
	}
	return n, err
}

// Reset rewinds the renderer to the first triangle.
func (mr *MeshRenderer) Reset() {
	mr.mesh, mr.next = 0, 0
}
