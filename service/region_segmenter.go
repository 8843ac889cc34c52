package service

import (
	"image"
	"image/color"
	"math"

	"github.com/Aashish23092/drive-decision/dto"
)

// Segmenter defaults. Area is measured at full scale.
const (
	DefaultSegmentStride = 4
	segmentMinSatVal     = 0.20
	segmentMinArea       = 1200
	segmentMinAspect     = 0.45
	segmentMaxAspect     = 3.0
	segmentPadding       = 8
)

// Box colors.
const (
	ColorBlue  = "blue"
	ColorGreen = "green"
)

type hueBand struct {
	color  string
	lo, hi float64
}

var segmentBands = []hueBand{
	{color: ColorBlue, lo: 185, hi: 255},
	{color: ColorGreen, lo: 55, hi: 150},
}

// Segmentation holds the best region found for each box color.
type Segmentation struct {
	Blue  *image.Rectangle
	Green *image.Rectangle
}

// Regions returns the found regions keyed by color, blue first.
func (s Segmentation) Regions() []ColoredRegion {
	var out []ColoredRegion
	if s.Blue != nil {
		out = append(out, ColoredRegion{Color: ColorBlue, Rect: *s.Blue})
	}
	if s.Green != nil {
		out = append(out, ColoredRegion{Color: ColorGreen, Rect: *s.Green})
	}
	return out
}

// ColoredRegion is one segmented box.
type ColoredRegion struct {
	Color string
	Rect  image.Rectangle
}

// RegionSegmenter locates the blue (pickup) and green (trip) boxes of the
// offer card by color.
type RegionSegmenter struct {
	Stride int
}

// NewRegionSegmenter creates a segmenter with the default sampling stride.
func NewRegionSegmenter() *RegionSegmenter {
	return &RegionSegmenter{Stride: DefaultSegmentStride}
}

type component struct {
	n      int
	x0, y0 int
	x1, y1 int
}

// Segment classifies a downsampled grid of the image and returns the best
// component per color. It returns dto.ErrSegmentationFailed when either
// color is missing; whatever was found is still returned.
func (s *RegionSegmenter) Segment(img image.Image) (Segmentation, error) {
	stride := s.Stride
	if stride <= 0 {
		stride = DefaultSegmentStride
	}
	bounds := img.Bounds()
	gw := (bounds.Dx() + stride - 1) / stride
	gh := (bounds.Dy() + stride - 1) / stride

	var seg Segmentation
	if gw == 0 || gh == 0 {
		return seg, dto.ErrSegmentationFailed
	}

	labels := make([]int8, gw*gh)
	for gy := 0; gy < gh; gy++ {
		for gx := 0; gx < gw; gx++ {
			px := color.NRGBAModel.Convert(img.At(bounds.Min.X+gx*stride, bounds.Min.Y+gy*stride)).(color.NRGBA)
			labels[gy*gw+gx] = classify(px)
		}
	}

	for i, band := range segmentBands {
		best := bestComponent(labels, int8(i+1), gw, gh, stride, bounds)
		if best == nil {
			continue
		}
		r := padRegion(*best, bounds)
		switch band.color {
		case ColorBlue:
			seg.Blue = &r
		case ColorGreen:
			seg.Green = &r
		}
	}

	if seg.Blue == nil || seg.Green == nil {
		return seg, dto.ErrSegmentationFailed
	}
	return seg, nil
}

// classify returns the 1-based band index of a pixel, or 0.
func classify(px color.NRGBA) int8 {
	h, sat, val := rgbToHSV(px.R, px.G, px.B)
	if sat < segmentMinSatVal || val < segmentMinSatVal {
		return 0
	}
	for i, band := range segmentBands {
		if h >= band.lo && h <= band.hi {
			return int8(i + 1)
		}
	}
	return 0
}

func bestComponent(labels []int8, label int8, gw, gh, stride int, bounds image.Rectangle) *image.Rectangle {
	visited := make([]bool, len(labels))
	var (
		best      *image.Rectangle
		bestScore float64
		stack     []int
	)

	for start := range labels {
		if labels[start] != label || visited[start] {
			continue
		}

		c := component{x0: gw, y0: gh, x1: -1, y1: -1}
		visited[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := idx%gw, idx/gw
			c.n++
			c.x0, c.y0 = min(c.x0, x), min(c.y0, y)
			c.x1, c.y1 = max(c.x1, x), max(c.y1, y)

			for _, nb := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				nx, ny := nb[0], nb[1]
				if nx < 0 || ny < 0 || nx >= gw || ny >= gh {
					continue
				}
				ni := ny*gw + nx
				if labels[ni] == label && !visited[ni] {
					visited[ni] = true
					stack = append(stack, ni)
				}
			}
		}

		rect := image.Rect(
			bounds.Min.X+c.x0*stride, bounds.Min.Y+c.y0*stride,
			bounds.Min.X+(c.x1+1)*stride, bounds.Min.Y+(c.y1+1)*stride,
		).Intersect(bounds)
		if !plausibleRegion(rect) {
			continue
		}

		cells := (c.x1 - c.x0 + 1) * (c.y1 - c.y0 + 1)
		score := float64(c.n) * float64(c.n) / float64(cells)
		if best == nil || score > bestScore {
			r := rect
			best, bestScore = &r, score
		}
	}
	return best
}

func plausibleRegion(r image.Rectangle) bool {
	if r.Dx()*r.Dy() < segmentMinArea || r.Dy() == 0 {
		return false
	}
	aspect := float64(r.Dx()) / float64(r.Dy())
	return aspect >= segmentMinAspect && aspect <= segmentMaxAspect
}

func padRegion(r, bounds image.Rectangle) image.Rectangle {
	return r.Inset(-segmentPadding).Intersect(bounds)
}

// rgbToHSV returns hue in degrees [0,360) and saturation/value in [0,1].
func rgbToHSV(r8, g8, b8 uint8) (h, s, v float64) {
	r, g, b := float64(r8)/255, float64(g8)/255, float64(b8)/255
	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	d := hi - lo

	v = hi
	if hi > 0 {
		s = d / hi
	}
	if d == 0 {
		return 0, s, v
	}

	switch hi {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}
