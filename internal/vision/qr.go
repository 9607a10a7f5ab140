package vision

import (
	"bytes"
	"fmt"
	"image"

	// Decoders for the formats screenshots and pasteboard images arrive in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi/qrcode"
)

// DecodeQRCodes decodes every QR code found in the image and returns their
// payloads in detection order. An image with no QR codes is an error from
// the underlying reader; callers treat any error as "no payloads".
func DecodeQRCodes(img []byte) ([]string, error) {
	decoded, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to build bitmap: %w", err)
	}

	results, err := qrcode.NewQRCodeMultiReader().DecodeMultiple(bmp, nil)
	if err != nil {
		return nil, fmt.Errorf("no QR codes found: %w", err)
	}

	payloads := make([]string, 0, len(results))
	for _, result := range results {
		payloads = append(payloads, result.GetText())
	}
	return payloads, nil
}
