package procpart

import (
	"log/slog"
	"math"
)

const defaultSliderPrecision = 0.001

// TruncateForSlider rounds value to a multiple of precision. A negative
// towards rounds down, a positive one rounds up and zero rounds to nearest.
// A non-positive precision returns value unchanged.
func TruncateForSlider(value, towards, precision float64) float64 {
	if precision <= 0 {
		return value
	}
	steps := value / precision
	switch {
	case towards < 0:
		steps = math.Floor(steps)
	case towards > 0:
		steps = math.Ceil(steps)
	default:
		steps = math.Round(steps)
	}
	return steps * precision
}

// recalculateVolume computes the staged volume, pulling the most recently
// edited parameter back when the editor enforces volume limits.
func (o *Octagon) recalculateVolume() {
	volume := Volume(o.params.Diameter, o.params.Length)
	if o.host.scene() == SceneEditor && o.cfg.Volume.Bounded() {
		volume = o.clampToVolumeLimits(volume)
	}
	o.volume = volume
}

func (o *Octagon) clampToVolumeLimits(volume float64) float64 {
	clamped := o.cfg.Volume.Clamp(volume)
	if clamped == volume {
		return volume
	}
	excess := volume - clamped
	p := &o.params
	if o.old.Diameter != p.Diameter {
		required := math.Sqrt(clamped / p.Length / (1 - NormSideOffset*NormSideOffset))
		if isFinite(required) {
			p.Diameter = o.cfg.Diameter.Clamp(TruncateForSlider(required, -excess, o.cfg.SliderPrecision))
		}
	} else {
		required := clamped / p.Metrics().Area
		if isFinite(required) {
			p.Length = o.cfg.Length.Clamp(TruncateForSlider(required, -excess, o.cfg.SliderPrecision))
		}
	}
	o.log.Debug("volume limited",
		slog.Float64("requested", volume),
		slog.Float64("diameter", p.Diameter),
		slog.Float64("length", p.Length),
	)
	o.host.Listener.RefreshEditor()
	return Volume(p.Diameter, p.Length)
}
