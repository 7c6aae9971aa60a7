package procpart

import (
	"errors"
	"fmt"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MeshBuffer is indexed triangle geometry with per vertex attributes.
// Normals, Tangents and UVs are either empty or the length of Vertices.
type MeshBuffer struct {
	Vertices  []ms3.Vec
	Normals   []ms3.Vec
	Tangents  []Tangent
	UVs       []ms2.Vec
	Triangles []int // three vertex indices per triangle
}

// NumTriangles returns the amount of triangles in the mesh.
func (mb *MeshBuffer) NumTriangles() int { return len(mb.Triangles) / 3 }

// Triangle returns the i'th triangle's vertices.
func (mb *MeshBuffer) Triangle(i int) ms3.Triangle {
	t := mb.Triangles[3*i : 3*i+3]
	return ms3.Triangle{mb.Vertices[t[0]], mb.Vertices[t[1]], mb.Vertices[t[2]]}
}

// Bounds returns the box enclosing all vertices.
func (mb *MeshBuffer) Bounds() ms3.Box {
	if len(mb.Vertices) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: mb.Vertices[0], Max: mb.Vertices[0]}
	for _, v := range mb.Vertices[1:] {
		bb.Min = ms3.MinElem(bb.Min, v)
		bb.Max = ms3.MaxElem(bb.Max, v)
	}
	return bb
}

// Validate checks attribute lengths, index ranges and vertex values.
func (mb *MeshBuffer) Validate() error {
	nv := len(mb.Vertices)
	switch {
	case len(mb.Triangles)%3 != 0:
		return errors.New("triangle index count not a multiple of 3")
	case len(mb.Normals) != 0 && len(mb.Normals) != nv:
		return fmt.Errorf("have %d normals for %d vertices", len(mb.Normals), nv)
	case len(mb.Tangents) != 0 && len(mb.Tangents) != nv:
		return fmt.Errorf("have %d tangents for %d vertices", len(mb.Tangents), nv)
	case len(mb.UVs) != 0 && len(mb.UVs) != nv:
		return fmt.Errorf("have %d uvs for %d vertices", len(mb.UVs), nv)
	}
	for i, idx := range mb.Triangles {
		if idx < 0 || idx >= nv {
			return fmt.Errorf("triangle %d references vertex %d out of %d", i/3, idx, nv)
		}
	}
	for i, v := range mb.Vertices {
		if bad32(v) {
			return fmt.Errorf("vertex %d is not finite: %v", i, v)
		}
	}
	return nil
}

// WriteTo writes the mesh into a sink. A nil sink is ignored.
func (mb *MeshBuffer) WriteTo(sink MeshSink) {
	if sink == nil {
		return
	}
	sink.Write(mb.Vertices, mb.Normals, mb.Tangents, mb.UVs, mb.Triangles)
}

// Append adds b's geometry to mb, offsetting b's indices.
func (mb *MeshBuffer) Append(b *MeshBuffer) {
	base := len(mb.Vertices)
	mb.Vertices = append(mb.Vertices, b.Vertices...)
	mb.Normals = append(mb.Normals, b.Normals...)
	mb.Tangents = append(mb.Tangents, b.Tangents...)
	mb.UVs = append(mb.UVs, b.UVs...)
	for _, idx := range b.Triangles {
		mb.Triangles = append(mb.Triangles, base+idx)
	}
}

func (mb *MeshBuffer) setVertex(i int, pos, normal r3.Vec, tangent Tangent, uv r2.Vec) {
	mb.Vertices[i] = vec32(pos)
	mb.Normals[i] = vec32(normal)
	mb.Tangents[i] = tangent
	mb.UVs[i] = uv32(uv)
}

func newMeshBuffer(vertices, triangles int, attributes bool) *MeshBuffer {
	mb := &MeshBuffer{
		Vertices:  make([]ms3.Vec, vertices),
		Triangles: make([]int, 0, 3*triangles),
	}
	if attributes {
		mb.Normals = make([]ms3.Vec, vertices)
		mb.Tangents = make([]Tangent, vertices)
		mb.UVs = make([]ms2.Vec, vertices)
	}
	return mb
}

// appendSideTriangles connects a ring of numCap vertices starting at index 0
// with the ring starting at numCap. Each corner has perCorner vertices and
// the last vertex of a corner starts the next face.
func (mb *MeshBuffer) appendSideTriangles(numCap, perCorner int) {
	for i := 0; i < numCap/perCorner; i++ {
		base := i*perCorner + perCorner - 1
		next := (base + 1) % numCap
		mb.Triangles = append(mb.Triangles,
			base, base+numCap, next,
			next, base+numCap, next+numCap,
		)
	}
}

// SideMesh generates the eight flat faces connecting the caps. Vertices
// are duplicated at corners so each face has its own normal.
func (m DerivedMetrics) SideMesh() *MeshBuffer {
	const ring = 16
	mb := newMeshBuffer(2*ring, 2*8, true)
	bottom := m.Corners(-m.HalfHeight)
	top := m.Corners(m.HalfHeight)
	for i := 0; i < ring; i++ {
		// Vertex i shares the face with vertex i-1 when i is even.
		n := FaceNormals[(i+1)/2%8]
		tan := Tangent{Dir: vec32(r3.Vec{X: n.Z, Z: -n.X}), W: 1}
		// The first vertex closes the last face and takes u = 1.
		uvi := (i + 1) % ring
		u := float64((i+1)/2) / 8
		mb.Vertices[i] = vec32(bottom[i/2])
		mb.Vertices[i+ring] = vec32(top[i/2])
		mb.Normals[i], mb.Normals[i+ring] = vec32(n), vec32(n)
		mb.Tangents[i], mb.Tangents[i+ring] = tan, tan
		mb.UVs[uvi] = uv32(r2.Vec{X: u, Y: 0})
		mb.UVs[uvi+ring] = uv32(r2.Vec{X: u, Y: 1})
	}
	mb.appendSideTriangles(ring, 2)
	return mb
}

// Texture coordinates of the corners on both caps.
var capUVs = [8]r2.Vec{
	{X: -NormHalfSideLength + 0.5, Y: 0},
	{X: NormHalfSideLength + 0.5, Y: 0},
	{X: 1, Y: -NormHalfSideLength + 0.5},
	{X: 1, Y: NormHalfSideLength + 0.5},
	{X: NormHalfSideLength + 0.5, Y: 1},
	{X: -NormHalfSideLength + 0.5, Y: 1},
	{X: 0, Y: NormHalfSideLength + 0.5},
	{X: 0, Y: -NormHalfSideLength + 0.5},
}

// CapMesh generates the top cap followed by the bottom cap.
func (m DerivedMetrics) CapMesh() *MeshBuffer {
	const ring = 8
	mb := newMeshBuffer(2*ring, 2*6, true)
	top := m.Corners(m.HalfHeight)
	bottom := m.Corners(-m.HalfHeight)
	for i := 0; i < ring; i++ {
		mb.setVertex(i, top[i], vecUp, Tangent{Dir: ms3.Vec{X: -1}, W: 1}, capUVs[i])
		mb.setVertex(i+ring, bottom[i], vecDown, Tangent{Dir: ms3.Vec{X: -1}, W: -1}, capUVs[i])
	}
	for i := 0; i < ring-2; i++ {
		mb.Triangles = append(mb.Triangles, i, ring-1, i+1)
	}
	for i := 0; i < ring-2; i++ {
		mb.Triangles = append(mb.Triangles, i+ring, i+1+ring, ring-1+ring)
	}
	return mb
}

// ColliderMesh generates side faces without duplicated corners or vertex
// attributes. It has no caps.
func (m DerivedMetrics) ColliderMesh() *MeshBuffer {
	const ring = 8
	mb := newMeshBuffer(2*ring, 2*8, false)
	bottom := m.Corners(-m.HalfHeight)
	top := m.Corners(m.HalfHeight)
	for i := 0; i < ring; i++ {
		mb.Vertices[i] = vec32(bottom[i])
		mb.Vertices[i+ring] = vec32(top[i])
	}
	mb.appendSideTriangles(ring, 1)
	return mb
}

// SideTextureScale returns the tiling of the side material.
func (p ShapeParameters) SideTextureScale() r2.Vec {
	return r2.Vec{X: 8 * NormSideLength * p.Diameter * 2, Y: p.Length}
}

func (o *Octagon) writeSideMesh(m DerivedMetrics) {
	m.SideMesh().WriteTo(o.host.sideSink())
	o.host.Listener.TextureScaleChanged("sides", o.cfg.SidesMaterial, o.params.SideTextureScale())
}

func (o *Octagon) writeEndMesh(m DerivedMetrics) {
	m.CapMesh().WriteTo(o.host.endSink())
}

func (o *Octagon) writeColliderMesh(m DerivedMetrics) {
	m.ColliderMesh().WriteTo(o.host.Meshes.Collider)
}
