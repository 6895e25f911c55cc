package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	DefaultMaxImageSize = 5 << 20
	DefaultMaxDimension = 2000
)

// ProcessedImage is an upload ready to be stored
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Extension   string
}

type ImageProcessor struct {
	MaxSize      int64 // bytes
	MaxDimension int   // longest edge in pixels
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: DefaultMaxImageSize, MaxDimension: DefaultMaxDimension}
}

// ValidateImage accepts JPEG and PNG up to MaxSize and returns the format
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image is empty")
	}
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// Process validates data, applies EXIF orientation and shrinks images whose
// longest edge is above MaxDimension. The original format is kept.
func (p *ImageProcessor) Process(data []byte) (*ProcessedImage, error) {
	format, err := p.ValidateImage(data)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.MaxDimension || bounds.Dy() > p.MaxDimension {
		img = imaging.Fit(img, p.MaxDimension, p.MaxDimension, imaging.Lanczos)
	}

	out := &ProcessedImage{ContentType: "image/jpeg", Extension: ".jpg"}
	encodeFormat := imaging.JPEG
	if format == "png" {
		out.ContentType = "image/png"
		out.Extension = ".png"
		encodeFormat = imaging.PNG
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, encodeFormat, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("cannot encode image: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}
