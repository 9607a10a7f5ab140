package model

// TextSpan is a single recognized run of text with its confidence in [0, 1].
type TextSpan struct {
	Text       string
	Confidence float64
}

// RecognitionResult is the immutable output of one recognition call: ordered
// text spans plus any decoded QR payloads, both in detection order.
type RecognitionResult struct {
	Spans      []TextSpan
	QRPayloads []string
}

// Empty reports whether the result carries nothing usable.
func (r RecognitionResult) Empty() bool {
	return len(r.Spans) == 0 && len(r.QRPayloads) == 0
}
