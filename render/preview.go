package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/glgl/math/ms3"
)

// View positions the camera of a preview.
type View struct {
	Eye, LookAt, Up ms3.Vec
	Near, Far       float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Supersampling renders at a multiple of the output size and downsamples.
	Supersampling int
}

// DefaultView looks at the model from an isometric corner with +Y up.
var DefaultView = View{
	Eye:           ms3.Vec{X: 2.4, Y: 2.4, Z: 2.4},
	Up:            ms3.Vec{Y: 1},
	Near:          1,
	Far:           10,
	FOV:           30,
	Supersampling: 2,
}

// Preview shades model with a Phong shader. The model is scaled to fit a
// bi-unit cube at the origin.
func Preview(model []ms3.Triangle, width, height int, view View) (image.Image, error) {
	if len(model) == 0 {
		return nil, errors.New("empty triangle slice")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New("invalid image dimensions")
	}
	scale := max(view.Supersampling, 1)
	tris := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		tris[i] = fauxgl.NewTriangleForPoints(fvec(t[0]), fvec(t[1]), fvec(t[2]))
	}
	mesh := fauxgl.NewTriangleMesh(tris)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()

	var (
		eye    = fvec(view.Eye)
		center = fvec(view.LookAt)
		up     = fvec(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(view.FOV, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear), nil
}

// SavePreview renders model and writes it as a PNG file.
func SavePreview(path string, model []ms3.Triangle, width, height int, view View) error {
	img, err := Preview(model, width, height, view)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}

func fvec(v ms3.Vec) fauxgl.Vector {
	return fauxgl.V(float64(v.X), float64(v.Y), float64(v.Z))
}
