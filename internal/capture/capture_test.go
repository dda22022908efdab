package capture_test

import (
	"image"
	"testing"

	"fishing-tool/internal/capture"
	"fishing-tool/internal/capture/capturetest"
	"fishing-tool/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridShapeAndMean(t *testing.T) {
	img := capturetest.Fill(4, 3, 10)
	capturetest.FillRect(img, image.Rect(0, 0, 2, 3), 40)

	g := capture.NewGrid(geom.Region{Top: 0, Left: 0, Width: 4, Height: 3}, img)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, 3, g.Channels())
	assert.InDelta(t, 25.0, g.Mean(), 1e-9)
}

func TestGridMeanIgnoresAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		if i%4 == 3 {
			img.Pix[i] = 255
		} else {
			img.Pix[i] = 30
		}
	}
	g := capture.NewGrid(geom.Region{Width: 2, Height: 2}, img)
	assert.InDelta(t, 30.0, g.Mean(), 1e-9)
}

func TestGridCropUsesScreenCoordinates(t *testing.T) {
	region := geom.Region{Top: 100, Left: 200, Width: 50, Height: 40}
	img := capturetest.Fill(50, 40, 0)
	// 屏幕坐标 (210..220, 110..120) 对应本地 (10..20, 10..20)
	capturetest.FillRect(img, image.Rect(10, 10, 20, 20), 200)
	g := capture.NewGrid(region, img)

	crop := g.Crop(geom.Region{Top: 110, Left: 210, Width: 10, Height: 10})
	assert.Equal(t, 10, crop.Width())
	assert.Equal(t, 10, crop.Height())
	assert.InDelta(t, 200.0, crop.Mean(), 1e-9)
}

func TestGridCropTruncatesAtEdge(t *testing.T) {
	g := capture.NewGrid(geom.Region{Top: 0, Left: 0, Width: 30, Height: 30}, capturetest.Fill(30, 30, 5))

	crop := g.Crop(geom.Region{Top: -10, Left: 20, Width: 20, Height: 20})
	assert.Equal(t, 10, crop.Width())
	assert.Equal(t, 10, crop.Height())

	full := capture.NewGrid(geom.Region{Width: 20, Height: 20}, capturetest.Fill(20, 20, 5))
	assert.False(t, crop.SameShape(full))

	outside := g.Crop(geom.Region{Top: 100, Left: 100, Width: 5, Height: 5})
	assert.Equal(t, 0, outside.Width())
	assert.Equal(t, 0.0, outside.Mean())
}

func TestNewGridConvertsNonRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(5, 5, 8, 9))
	for i := range gray.Pix {
		gray.Pix[i] = 90
	}
	g := capture.NewGrid(geom.Region{Width: 3, Height: 4}, gray)
	require.Equal(t, 3, g.Width())
	require.Equal(t, 4, g.Height())
	assert.InDelta(t, 90.0, g.Mean(), 1e-9)
}

func TestWithMeanHelper(t *testing.T) {
	g := capture.NewGrid(geom.Region{Width: 40, Height: 40}, capturetest.WithMean(40, 40, 100.3))
	assert.InDelta(t, 100.3, g.Mean(), 1e-9)
}
