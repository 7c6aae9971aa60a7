// Command procpart builds an octagonal part body and exports its geometry.
//
// Usage:
//
//	procpart [-config file.yaml] [-d diameter] [-l length] [-stl out.stl] [-png out.png] [-plot out.png]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/procpart"
	"github.com/soypat/procpart/config"
	"github.com/soypat/procpart/editor"
	"github.com/soypat/procpart/render"
	"gonum.org/v1/gonum/spatial/r2"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "procpart:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("procpart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath  = fs.String("config", "", "YAML configuration `file`")
		diameter = fs.Float64("d", 0, "diameter, overrides the configured initial diameter")
		length   = fs.Float64("l", 0, "length, overrides the configured initial length")
		stlPath  = fs.String("stl", "", "write the shape's visual mesh as binary STL to `file`")
		pngPath  = fs.String("png", "", "write a shaded preview PNG to `file`")
		plotPath = fs.String("plot", "", "write a plot of volume against length to `file`")
		vv       = fs.Bool("vv", false, "debug logging")
		v        = fs.Bool("v", false, "informational logging")
		q        = fs.Bool("q", false, "only log errors")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: levelFromFlags(*vv, *v, *q)}))

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			return err
		}
	}

	sides, ends := &meshCapture{}, &meshCapture{}
	listener := &logListener{log: logger}
	shape, err := procpart.NewOctagon(cfg, procpart.Host{
		Meshes:   procpart.Meshes{Sides: sides, Ends: ends},
		Listener: listener,
	}, logger)
	if err != nil {
		return err
	}
	shape.UpdateShape(true)

	panel := editor.Bind(shape)
	listener.panel = panel
	if *diameter > 0 {
		if err := panel.Set(editor.Diameter, *diameter); err != nil {
			return err
		}
	}
	if *length > 0 {
		if err := panel.Set(editor.Length, *length); err != nil {
			return err
		}
	}
	shape.UpdateShape(false)

	p, m := shape.Parameters(), shape.Metrics()
	fmt.Fprintf(stdout, "diameter %.3f m\nlength   %.3f m\narea     %.4f m²\nvolume   %.4f m³\n",
		p.Diameter, p.Length, m.Area, shape.Volume())

	if *stlPath == "" && *pngPath == "" && *plotPath == "" {
		return nil
	}
	var model procpart.MeshBuffer
	model.Append(&sides.mesh)
	model.Append(&ends.mesh)
	if err := model.Validate(); err != nil {
		return fmt.Errorf("generated mesh: %w", err)
	}
	if *stlPath != "" {
		if err := render.CreateSTL(*stlPath, render.NewMeshRenderer(&model)); err != nil {
			return fmt.Errorf("write STL: %w", err)
		}
		logger.Info("wrote STL", slog.String("path", *stlPath), slog.Int("triangles", model.NumTriangles()))
	}
	if *pngPath != "" {
		tris, err := render.RenderAll(render.NewMeshRenderer(&model))
		if err != nil {
			return err
		}
		if err := render.SavePreview(*pngPath, tris, 768, 432, render.DefaultView); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		logger.Info("wrote preview", slog.String("path", *pngPath))
	}
	if *plotPath != "" {
		if err := plotVolume(*plotPath, cfg, p.Diameter); err != nil {
			return fmt.Errorf("write plot: %w", err)
		}
		logger.Info("wrote plot", slog.String("path", *plotPath))
	}
	return nil
}

// levelFromFlags returns the logging level selected by the verbosity
// flags, evaluated in order.
func levelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// meshCapture keeps the last mesh written to it.
type meshCapture struct {
	mesh procpart.MeshBuffer
}

func (mc *meshCapture) Write(vertices, normals []ms3.Vec, tangents []procpart.Tangent, uvs []ms2.Vec, triangles []int) {
	mc.mesh = procpart.MeshBuffer{
		Vertices:  append(mc.mesh.Vertices[:0], vertices...),
		Normals:   append(mc.mesh.Normals[:0], normals...),
		Tangents:  append(mc.mesh.Tangents[:0], tangents...),
		UVs:       append(mc.mesh.UVs[:0], uvs...),
		Triangles: append(mc.mesh.Triangles[:0], triangles...),
	}
}

// logListener logs shape notifications and keeps the editor panel current.
type logListener struct {
	log   *slog.Logger
	panel *editor.Panel
}

func (l *logListener) AttachNodeSizeChanged(node *procpart.AttachNode, diameter, area float64) {
	l.log.Debug("attach node resized", slog.String("node", node.ID), slog.Int("size", node.Size), slog.Float64("area", area))
}

func (l *logListener) TextureScaleChanged(surface, material string, scale r2.Vec) {
	l.log.Debug("texture scale", slog.String("surface", surface), slog.String("material", material), slog.Any("scale", scale))
}

func (l *logListener) ModelAndColliderChanged() {
	l.log.Debug("model changed")
}

func (l *logListener) RefreshEditor() {
	l.log.Info("volume limit reached")
	if l.panel != nil {
		l.panel.RefreshEditor()
	}
}
