package detector

import (
	"testing"
	"time"

	"fishing-tool/internal/geom"

	"github.com/stretchr/testify/assert"
)

func TestParamsValidate(t *testing.T) {
	region := geom.Region{Top: 70, Left: 70, Width: 1134, Height: 650}

	assert.NoError(t, testParams(region).Validate())

	tests := []struct {
		name   string
		modify func(p *Params)
	}{
		{"empty region", func(p *Params) { p.SearchRegion.Width = 0 }},
		{"zero probe", func(p *Params) { p.ProbeRadius = 0 }},
		{"probe larger than region", func(p *Params) { p.SearchRegion.Height = 19 }},
		{"zero diff threshold", func(p *Params) { p.ColorDiffThreshold = 0 }},
		{"negative iterations", func(p *Params) { p.ConfirmationIterations = -1 }},
		{"negative pause", func(p *Params) { p.ConfirmationPause = -time.Millisecond }},
		{"negative settle", func(p *Params) { p.SettleDelay = -time.Second }},
		{"zero appear radius", func(p *Params) { p.AppearRadius = 0 }},
		{"zero appear threshold", func(p *Params) { p.AppearThreshold = 0 }},
		{"positive fade threshold", func(p *Params) { p.FadeThreshold = 4 }},
		{"zero max wait", func(p *Params) { p.MaxWaitDuration = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams(region)
			tt.modify(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestParamsValidateAllowsNoConfirmation(t *testing.T) {
	p := testParams(geom.Region{Top: 0, Left: 0, Width: 20, Height: 20})
	p.ConfirmationIterations = 0
	p.ConfirmationPause = 0
	assert.NoError(t, p.Validate())
}

func TestParamsCheckWithin(t *testing.T) {
	p := testParams(geom.Region{Top: 70, Left: 70, Width: 1134, Height: 650})

	screen := geom.Region{Top: 0, Left: 0, Width: 1920, Height: 1080}
	window := geom.Region{Top: 0, Left: 0, Width: 1280, Height: 800}
	assert.NoError(t, p.CheckWithin("屏幕", screen))
	assert.NoError(t, p.CheckWithin("游戏窗口", window))

	// 窗口没有调整大小, 仍是较小的默认尺寸
	small := geom.Region{Top: 0, Left: 0, Width: 1024, Height: 768}
	err := p.CheckWithin("游戏窗口", small)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "游戏窗口")
	}

	// 窗口被挪开
	moved := geom.Region{Top: 100, Left: 200, Width: 1280, Height: 800}
	assert.Error(t, p.CheckWithin("游戏窗口", moved))
}
