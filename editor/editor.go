// Package editor exposes a shape's editable dimensions as slider
// descriptors for a user interface. It holds no UI state of its own.
package editor

import (
	"errors"
	"fmt"

	"github.com/soypat/procpart"
	"github.com/soypat/procpart/config"
)

// Slider names.
const (
	Diameter = "Diameter"
	Length   = "Length"
)

// Slider describes an editable dimension.
type Slider struct {
	Name string
	// Value is the staged value of the dimension.
	Value float64
	Min   float64
	Max   float64
	// Step and PageStep are the small and large increments.
	Step     float64
	PageStep float64
	// SlideStep is the granularity of dragging the slider.
	SlideStep float64
	// Precision is the number of significant figures displayed.
	Precision int
	Units     string
	Format    string
	// Hidden sliders are not editable.
	Hidden bool
}

// Shape is the part of a procedural shape the editor drives.
type Shape interface {
	Config() config.Config
	Parameters() procpart.ShapeParameters
	SetDiameter(float64) error
	SetLength(float64) error
	ApplyBounds()
	UpdateShape(force bool)
}

// Panel binds sliders to a shape.
type Panel struct {
	shape   Shape
	sliders []Slider
}

// Bind creates the sliders for s from its configured ranges and clamps the
// staged parameters into them.
func Bind(s Shape) *Panel {
	cfg := s.Config()
	p := &Panel{
		shape: s,
		sliders: []Slider{
			newSlider(Diameter, cfg.Diameter, cfg.SliderPrecision),
			newSlider(Length, cfg.Length, cfg.SliderPrecision),
		},
	}
	s.ApplyBounds()
	p.Refresh()
	return p
}

func newSlider(name string, r config.Range, precision float64) Slider {
	return Slider{
		Name:      name,
		Min:       r.Min,
		Max:       r.Max,
		Step:      r.SmallStep,
		PageStep:  r.LargeStep,
		SlideStep: precision,
		Precision: 5,
		Units:     "m",
		Format:    "F3",
		Hidden:    r.Fixed(),
	}
}

// Sliders returns a copy of the current slider descriptors.
func (p *Panel) Sliders() []Slider {
	return append([]Slider(nil), p.sliders...)
}

// Slider returns the slider with the given name.
func (p *Panel) Slider(name string) (Slider, bool) {
	if i := p.index(name); i >= 0 {
		return p.sliders[i], true
	}
	return Slider{}, false
}

func (p *Panel) index(name string) int {
	for i := range p.sliders {
		if p.sliders[i].Name == name {
			return i
		}
	}
	return -1
}

// Set edits the named dimension and updates the shape. The value is
// snapped to the slide step and limited to the slider's range.
func (p *Panel) Set(name string, value float64) error {
	i := p.index(name)
	if i < 0 {
		return fmt.Errorf("no slider %q", name)
	}
	sl := p.sliders[i]
	if sl.Hidden {
		return fmt.Errorf("slider %q is not editable", name)
	}
	value = procpart.TruncateForSlider(value, 0, sl.SlideStep)
	value = procpart.Clamp(value, sl.Min, sl.Max)
	var err error
	switch name {
	case Diameter:
		err = p.shape.SetDiameter(value)
	case Length:
		err = p.shape.SetLength(value)
	default:
		err = errors.New("unhandled slider")
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	p.shape.UpdateShape(false)
	p.Refresh()
	return nil
}

// Refresh reads slider values back from the shape.
func (p *Panel) Refresh() {
	params := p.shape.Parameters()
	for i := range p.sliders {
		switch p.sliders[i].Name {
		case Diameter:
			p.sliders[i].Value = params.Diameter
		case Length:
			p.sliders[i].Value = params.Length
		}
	}
}

// RefreshEditor implements the editor notification of procpart.Listener.
func (p *Panel) RefreshEditor() { p.Refresh() }
