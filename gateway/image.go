package gateway

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// Image is raw image bytes plus their MIME type.
type Image struct {
	Data     []byte
	MIMEType string
}

// DataURL renders img as a data: URL suitable for ClothingItem.ImageURL.
func (img Image) DataURL() string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// ParseDataURL is the inverse of DataURL. Only base64 payloads are accepted.
func ParseDataURL(s string) (Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Image{}, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, fmt.Errorf("data URL has no payload")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return Image{}, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("decode data URL: %w", err)
	}
	return Image{Data: data, MIMEType: mime}, nil
}

func isImageMIME(mime string) bool {
	return strings.Contains(strings.ToLower(mime), "image")
}

// shrink scales img down so neither side exceeds maxDim. Images that are
// already small enough, or that cannot be decoded, come back untouched.
func shrink(img Image, maxDim int) Image {
	if maxDim <= 0 {
		return img
	}
	decoded, err := imaging.Decode(bytes.NewReader(img.Data), imaging.AutoOrientation(true))
	if err != nil {
		return img
	}
	b := decoded.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	resized := imaging.Fit(decoded, maxDim, maxDim, imaging.Lanczos)

	format, mime := imaging.JPEG, "image/jpeg"
	if strings.Contains(img.MIMEType, "png") {
		format, mime = imaging.PNG, "image/png"
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return img
	}
	return Image{Data: buf.Bytes(), MIMEType: mime}
}
