// Package vision adapts the tesseract OCR engine and QR code decoding to
// the service.Recognizer contract.
package vision

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/textgrab/textgrab/internal/common"
	"github.com/textgrab/textgrab/internal/model"
	"github.com/textgrab/textgrab/internal/service"
)

// TesseractRecognizer implements service.Recognizer with a local tesseract
// install. Each call uses a fresh client; recognition runs once per manual
// user action, so client reuse buys nothing.
type TesseractRecognizer struct{}

// NewTesseractRecognizer creates a new tesseract-backed recognizer.
func NewTesseractRecognizer() *TesseractRecognizer {
	return &TesseractRecognizer{}
}

// RecognizeFile runs recognition over an image file on disk.
func (r *TesseractRecognizer) RecognizeFile(ctx context.Context, path string, opts service.RecognizeOptions) (model.RecognitionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RecognitionResult{}, fmt.Errorf("%w: %v", common.ErrRecognitionUnavailable, err)
	}
	return r.RecognizeImage(ctx, data, opts)
}

// RecognizeImage runs recognition over in-memory image bytes.
func (r *TesseractRecognizer) RecognizeImage(ctx context.Context, img []byte, opts service.RecognizeOptions) (model.RecognitionResult, error) {
	if err := ctx.Err(); err != nil {
		return model.RecognitionResult{}, err
	}
	if len(img) == 0 {
		return model.RecognitionResult{}, common.ErrRecognitionUnavailable
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if len(opts.Languages) > 0 {
		if err := client.SetLanguage(opts.Languages...); err != nil {
			return model.RecognitionResult{}, fmt.Errorf("%w: %v", common.ErrRecognitionUnavailable, err)
		}
	}
	if err := client.SetImageFromBytes(img); err != nil {
		return model.RecognitionResult{}, fmt.Errorf("%w: %v", common.ErrRecognitionUnavailable, err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return model.RecognitionResult{}, fmt.Errorf("%w: %v", common.ErrRecognitionUnavailable, err)
	}

	result := model.RecognitionResult{Spans: SpansFromBoxes(boxes)}

	if opts.DetectQRCodes {
		// Decode failure just means no payloads; it never fails the event.
		if payloads, qrErr := DecodeQRCodes(img); qrErr == nil {
			result.QRPayloads = payloads
		}
	}

	return result, nil
}

// SpansFromBoxes converts tesseract line boxes to text spans, scaling the
// 0..100 confidence to [0, 1] and dropping whitespace-only lines.
func SpansFromBoxes(boxes []gosseract.BoundingBox) []model.TextSpan {
	spans := make([]model.TextSpan, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimRight(box.Word, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		spans = append(spans, model.TextSpan{
			Text:       text,
			Confidence: box.Confidence / 100.0,
		})
	}
	return spans
}
