package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raushankrgupta/virtual-closet/gateway"
)

// OffloadImage moves an inline data URL image to S3 and returns the object
// key to store instead. Remote URLs, existing keys and everything when no
// bucket is configured pass through unchanged.
func OffloadImage(ctx context.Context, imageURL, folder string) (string, error) {
	if !MediaEnabled() || !strings.HasPrefix(imageURL, "data:") {
		return imageURL, nil
	}
	img, err := gateway.ParseDataURL(imageURL)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%d_%s%s", folder, time.Now().UnixNano(), uuid.NewString()[:8], extensionFor(img.MIMEType))
	return UploadFileToS3(ctx, bytes.NewReader(img.Data), key, img.MIMEType)
}

func extensionFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ""
}
