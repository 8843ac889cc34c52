package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/Aashish23092/drive-decision/dto"
	"github.com/disintegration/imaging"
)

// DecodeFrame decodes an encoded screenshot (PNG or JPEG).
func DecodeFrame(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}
	return img, nil
}

// FrameToImage converts a raw capture buffer to an RGB image.
func FrameToImage(raw *dto.RawFrame) (image.Image, error) {
	if raw == nil {
		return nil, fmt.Errorf("raw frame is nil")
	}
	if raw.Width <= 0 || raw.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", raw.Width, raw.Height)
	}

	switch raw.Format {
	case dto.FrameFormatRGBA:
		return rgbaFrame(raw)
	case dto.FrameFormatI420:
		return i420Frame(raw)
	case dto.FrameFormatNV21:
		return nv21Frame(raw)
	}
	return nil, fmt.Errorf("%w: %q", dto.ErrUnsupportedFrameFormat, raw.Format)
}

func rgbaFrame(raw *dto.RawFrame) (image.Image, error) {
	w, h := raw.Width, raw.Height
	stride := raw.Stride
	if stride == 0 {
		stride = w * 4
	}
	if stride < w*4 {
		return nil, fmt.Errorf("rgba stride %d shorter than row %d", stride, w*4)
	}
	if need := stride*(h-1) + w*4; len(raw.Data) < need {
		return nil, fmt.Errorf("rgba buffer has %d bytes, need %d", len(raw.Data), need)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], raw.Data[y*stride:y*stride+w*4])
	}
	return img, nil
}

// i420Frame handles planar Y, U, V. Chroma rows use half the luma stride.
func i420Frame(raw *dto.RawFrame) (image.Image, error) {
	w, h := raw.Width, raw.Height
	yStride := raw.Stride
	if yStride == 0 {
		yStride = w
	}
	ch := (h + 1) / 2
	cStride := (yStride + 1) / 2
	if yStride < w {
		return nil, fmt.Errorf("i420 stride %d shorter than width %d", yStride, w)
	}

	ySize, cSize := yStride*h, cStride*ch
	if need := ySize + 2*cSize; len(raw.Data) < need {
		return nil, fmt.Errorf("i420 buffer has %d bytes, need %d", len(raw.Data), need)
	}

	ycc := &image.YCbCr{
		Y:              raw.Data[:ySize],
		Cb:             raw.Data[ySize : ySize+cSize],
		Cr:             raw.Data[ySize+cSize : ySize+2*cSize],
		YStride:        yStride,
		CStride:        cStride,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, w, h),
	}
	return imaging.Clone(ycc), nil
}

// nv21Frame handles a Y plane followed by interleaved V/U pairs.
func nv21Frame(raw *dto.RawFrame) (image.Image, error) {
	w, h := raw.Width, raw.Height
	stride := raw.Stride
	if stride == 0 {
		stride = w
	}
	if stride < w {
		return nil, fmt.Errorf("nv21 stride %d shorter than width %d", stride, w)
	}
	// odd widths still carry a full V/U pair for the last column
	cRow := 2 * ((w + 1) / 2)
	cStride := max(stride, cRow)
	ch := (h + 1) / 2
	ySize := stride * h
	if need := ySize + cStride*(ch-1) + cRow; len(raw.Data) < need {
		return nil, fmt.Errorf("nv21 buffer has %d bytes, need %d", len(raw.Data), need)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	vu := raw.Data[ySize:]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			luma := raw.Data[y*stride+x]
			off := (y/2)*cStride + (x/2)*2
			r, g, b := color.YCbCrToRGB(luma, vu[off+1], vu[off])
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img, nil
}
