package service

import (
	"image"
	"image/color"
	"testing"

	"github.com/Aashish23092/drive-decision/dto"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white     = color.NRGBA{255, 255, 255, 255}
	cardBlue  = color.NRGBA{0, 90, 255, 255}
	cardGreen = color.NRGBA{30, 180, 60, 255}
)

func paint(canvas *image.NRGBA, c color.NRGBA, r image.Rectangle) *image.NRGBA {
	return imaging.Paste(canvas, imaging.New(r.Dx(), r.Dy(), c), r.Min)
}

func TestSegmentFindsBothBoxes(t *testing.T) {
	canvas := imaging.New(400, 300, white)
	canvas = paint(canvas, cardBlue, image.Rect(40, 40, 160, 100))
	canvas = paint(canvas, cardGreen, image.Rect(220, 40, 340, 100))

	seg, err := NewRegionSegmenter().Segment(canvas)

	require.NoError(t, err)
	require.NotNil(t, seg.Blue)
	require.NotNil(t, seg.Green)
	assert.Equal(t, image.Rect(32, 32, 168, 108), *seg.Blue)
	assert.Equal(t, image.Rect(212, 32, 348, 108), *seg.Green)

	regions := seg.Regions()
	require.Len(t, regions, 2)
	assert.Equal(t, ColorBlue, regions[0].Color)
	assert.Equal(t, ColorGreen, regions[1].Color)
}

func TestSegmentMissingGreenStillReportsBlue(t *testing.T) {
	canvas := imaging.New(400, 300, white)
	canvas = paint(canvas, cardBlue, image.Rect(40, 40, 160, 100))
	// thin progress bar in the same hue must not win
	canvas = paint(canvas, cardBlue, image.Rect(20, 200, 320, 204))

	seg, err := NewRegionSegmenter().Segment(canvas)

	assert.ErrorIs(t, err, dto.ErrSegmentationFailed)
	require.NotNil(t, seg.Blue)
	assert.Equal(t, image.Rect(32, 32, 168, 108), *seg.Blue)
	assert.Nil(t, seg.Green)
}

func TestSegmentRejectsSmallAndThinRegions(t *testing.T) {
	canvas := imaging.New(400, 300, white)
	canvas = paint(canvas, cardGreen, image.Rect(100, 100, 120, 120))
	canvas = paint(canvas, cardBlue, image.Rect(20, 200, 320, 204))

	seg, err := NewRegionSegmenter().Segment(canvas)

	assert.ErrorIs(t, err, dto.ErrSegmentationFailed)
	assert.Nil(t, seg.Blue)
	assert.Nil(t, seg.Green)
	assert.Empty(t, seg.Regions())
}

func TestSegmentClampsPaddingToImage(t *testing.T) {
	canvas := imaging.New(200, 200, white)
	canvas = paint(canvas, cardBlue, image.Rect(0, 0, 80, 60))
	canvas = paint(canvas, cardGreen, image.Rect(120, 140, 200, 200))

	seg, err := NewRegionSegmenter().Segment(canvas)

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 88, 68), *seg.Blue)
	assert.Equal(t, image.Rect(112, 132, 200, 200), *seg.Green)
}

func TestRGBToHSV(t *testing.T) {
	h, s, v := rgbToHSV(255, 0, 0)
	assert.Equal(t, []float64{0, 1, 1}, []float64{h, s, v})

	h, _, _ = rgbToHSV(0, 255, 0)
	assert.InDelta(t, 120, h, 1e-9)

	h, _, _ = rgbToHSV(0, 0, 255)
	assert.InDelta(t, 240, h, 1e-9)

	h, _, _ = rgbToHSV(255, 0, 128)
	assert.InDelta(t, 329.9, h, 0.1)

	_, s, v = rgbToHSV(128, 128, 128)
	assert.Zero(t, s)
	assert.InDelta(t, 0.502, v, 0.001)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, int8(1), classify(cardBlue))
	assert.Equal(t, int8(2), classify(cardGreen))
	assert.Equal(t, int8(0), classify(white))
	assert.Equal(t, int8(0), classify(color.NRGBA{10, 10, 40, 255}))
}
