package ocr

import "context"

// Result is the output of a primary engine for one image.
// Confidence is the engine's mean word confidence on a 0-100 scale.
type Result struct {
	Text       string
	Confidence float64
}

// PrimaryEngine recognizes text and reports how sure it is.
type PrimaryEngine interface {
	Recognize(ctx context.Context, image []byte) (Result, error)
}

// SecondaryEngine is a fallback recognizer consulted on low-confidence
// primary results. It reports text only; selection is by recovered length.
type SecondaryEngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Preprocessor normalizes an image for recognition.
// Input and output are both encoded image bytes.
type Preprocessor interface {
	Prepare(image []byte) ([]byte, error)
}
