package procpart

import (
	"testing"

	"github.com/soypat/procpart/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateForSlider(t *testing.T) {
	tests := []struct {
		value, towards, precision, want float64
	}{
		{1.23456, -1, 0.001, 1.234},
		{1.23411, 1, 0.001, 1.235},
		{1.2346, 0, 0.001, 1.235},
		{1.5, -2, 0.25, 1.5},
		{1.6, 3, 0.25, 1.75},
		{1.23456, -1, 0, 1.23456},
	}
	for _, test := range tests {
		got := TruncateForSlider(test.value, test.towards, test.precision)
		assert.InDelta(t, test.want, got, 1e-12, "%+v", test)
	}
}

func volumeLimitedConfig() config.Config {
	cfg := testConfig(1, 1)
	cfg.Volume = config.Range{Min: 0.5, Max: 2}
	return cfg
}

func TestVolumeClampPullsBackDiameter(t *testing.T) {
	th := newTestHost()
	o := newTestOctagon(t, volumeLimitedConfig(), th)
	o.UpdateShape(false)
	assert.Zero(t, th.rec.refresh)

	require.NoError(t, o.SetDiameter(3))
	o.UpdateShape(false)
	p := o.Parameters()
	assert.Equal(t, 1.0, p.Length, "length must not change when diameter was edited")
	assert.InDelta(t, 1.479, p.Diameter, 1e-9)
	assert.LessOrEqual(t, o.Volume(), 2.0)
	assert.GreaterOrEqual(t, o.Volume(), 0.5)
	assert.InDelta(t, Volume(p.Diameter, p.Length), o.Volume(), tol)
	assert.Equal(t, 1, th.rec.refresh)
}

func TestVolumeClampPullsBackLength(t *testing.T) {
	th := newTestHost()
	o := newTestOctagon(t, volumeLimitedConfig(), th)
	o.UpdateShape(false)

	require.NoError(t, o.SetLength(0.1))
	o.UpdateShape(false)
	p := o.Parameters()
	assert.Equal(t, 1.0, p.Diameter)
	area := p.Metrics().Area
	assert.InDelta(t, TruncateForSlider(0.5/area, 1, 0.001), p.Length, 1e-12)
	assert.GreaterOrEqual(t, o.Volume(), 0.5)
	assert.Equal(t, 1, th.rec.refresh)
}

func TestVolumeClampInvariant(t *testing.T) {
	o := newTestOctagon(t, volumeLimitedConfig(), newTestHost())
	o.UpdateShape(false)
	edits := []struct {
		diameter bool
		value    float64
	}{
		{true, 4}, {false, 6}, {false, 0.05}, {true, 0.3}, {true, 1.1}, {false, 1.7}, {true, 9},
	}
	for _, e := range edits {
		if e.diameter {
			require.NoError(t, o.SetDiameter(e.value))
		} else {
			require.NoError(t, o.SetLength(e.value))
		}
		o.UpdateShape(false)
		assert.GreaterOrEqual(t, o.Volume(), 0.5, "%+v", e)
		assert.LessOrEqual(t, o.Volume(), 2.0, "%+v", e)
	}
}

func TestVolumeLimitsOnlyInEditor(t *testing.T) {
	th := newTestHost()
	th.current = SceneFlight
	o := newTestOctagon(t, volumeLimitedConfig(), th)
	require.NoError(t, o.SetDiameter(3))
	o.UpdateShape(false)
	assert.Equal(t, 3.0, o.Parameters().Diameter)
	assert.InDelta(t, Volume(3, 1), o.Volume(), tol)
	assert.Zero(t, th.rec.refresh)
}

func TestFirstUpdateSolvesDiameter(t *testing.T) {
	cfg := volumeLimitedConfig()
	cfg.InitialDiameter = 5
	o := newTestOctagon(t, cfg, newTestHost())
	o.UpdateShape(false)
	assert.Equal(t, 1.0, o.Parameters().Length)
	assert.Less(t, o.Parameters().Diameter, 5.0)
	assert.LessOrEqual(t, o.Volume(), 2.0)
}
