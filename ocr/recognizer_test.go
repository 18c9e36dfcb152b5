package ocr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/querent/ocr"
	"github.com/poiesic/querent/ocr/mock"
)

func primaryReturning(text string, confidence float64) *mock.MockPrimaryEngine {
	engine := mock.NewMockPrimaryEngine()
	engine.RecognizeFunc = func(ctx context.Context, image []byte) (ocr.Result, error) {
		return ocr.Result{Text: text, Confidence: confidence}, nil
	}
	return engine
}

func secondaryReturning(text string) *mock.MockSecondaryEngine {
	engine := mock.NewMockSecondaryEngine()
	engine.RecognizeFunc = func(ctx context.Context, image []byte) (string, error) {
		return text, nil
	}
	return engine
}

func TestRecognizeText(t *testing.T) {
	ctx := context.Background()
	image := []byte("fake image bytes")

	t.Run("confident primary skips secondary", func(t *testing.T) {
		secondary := secondaryReturning("secondary text")
		recognizer, err := ocr.NewRecognizer(
			primaryReturning("primary text", 85),
			ocr.WithSecondary(secondary),
			ocr.WithPreprocessor(&mock.MockPreprocessor{}),
		)
		require.NoError(t, err)

		text, err := recognizer.RecognizeText(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, "primary text", text)
		assert.Equal(t, 0, secondary.CallCount())
	})

	t.Run("low confidence prefers longer secondary", func(t *testing.T) {
		recognizer, err := ocr.NewRecognizer(
			primaryReturning("short garbled output from a noisy scan padded to sixty chars", 45),
			ocr.WithSecondary(secondaryReturning("a cleaner and noticeably longer recognition of the same noisy page image")),
			ocr.WithPreprocessor(&mock.MockPreprocessor{}),
		)
		require.NoError(t, err)

		text, err := recognizer.RecognizeText(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, "a cleaner and noticeably longer recognition of the same noisy page image", text)
	})

	t.Run("low confidence keeps primary when secondary not longer", func(t *testing.T) {
		recognizer, err := ocr.NewRecognizer(
			primaryReturning("same size", 45),
			ocr.WithSecondary(secondaryReturning("same size")),
			ocr.WithPreprocessor(&mock.MockPreprocessor{}),
		)
		require.NoError(t, err)

		text, err := recognizer.RecognizeText(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, "same size", text)
	})

	t.Run("no secondary accepts low confidence primary", func(t *testing.T) {
		recognizer, err := ocr.NewRecognizer(
			primaryReturning("barely legible", 10),
			ocr.WithPreprocessor(&mock.MockPreprocessor{}),
		)
		require.NoError(t, err)

		text, err := recognizer.RecognizeText(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, "barely legible", text)
	})

	t.Run("secondary failure keeps primary", func(t *testing.T) {
		secondary := mock.NewMockSecondaryEngine()
		secondary.RecognizeFunc = func(ctx context.Context, image []byte) (string, error) {
			return "", errors.New("service unavailable")
		}
		recognizer, err := ocr.NewRecognizer(
			primaryReturning("primary text", 45),
			ocr.WithSecondary(secondary),
			ocr.WithPreprocessor(&mock.MockPreprocessor{}),
		)
		require.NoError(t, err)

		text, err := recognizer.RecognizeText(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, "primary text", text)
	})

	t.Run("primary failure propagates", func(t *testing.T) {
		primary := mock.NewMockPrimaryEngine()
		primary.RecognizeFunc = func(ctx context.Context, image []byte) (ocr.Result, error) {
			return ocr.Result{}, errors.New("tesseract init failed")
		}
		recognizer, err := ocr.NewRecognizer(primary,
			ocr.WithPreprocessor(&mock.MockPreprocessor{}))
		require.NoError(t, err)

		_, err = recognizer.RecognizeText(ctx, image)
		assert.Error(t, err)
	})

	t.Run("preprocessing failure recognizes raw image", func(t *testing.T) {
		var seen []byte
		primary := mock.NewMockPrimaryEngine()
		primary.RecognizeFunc = func(ctx context.Context, img []byte) (ocr.Result, error) {
			seen = img
			return ocr.Result{Text: "ok", Confidence: 90}, nil
		}
		recognizer, err := ocr.NewRecognizer(primary,
			ocr.WithPreprocessor(&mock.MockPreprocessor{
				PrepareFunc: func(image []byte) ([]byte, error) {
					return nil, errors.New("decode failed")
				},
			}))
		require.NoError(t, err)

		text, err := recognizer.RecognizeText(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, "ok", text)
		assert.Equal(t, image, seen)
	})

	t.Run("preprocessed image reaches engines", func(t *testing.T) {
		prepared := []byte("prepared")
		var primarySaw, secondarySaw []byte

		primary := mock.NewMockPrimaryEngine()
		primary.RecognizeFunc = func(ctx context.Context, img []byte) (ocr.Result, error) {
			primarySaw = img
			return ocr.Result{Text: "p", Confidence: 10}, nil
		}
		secondary := mock.NewMockSecondaryEngine()
		secondary.RecognizeFunc = func(ctx context.Context, img []byte) (string, error) {
			secondarySaw = img
			return "pp", nil
		}

		recognizer, err := ocr.NewRecognizer(primary,
			ocr.WithSecondary(secondary),
			ocr.WithPreprocessor(&mock.MockPreprocessor{
				PrepareFunc: func(image []byte) ([]byte, error) {
					return prepared, nil
				},
			}))
		require.NoError(t, err)

		_, err = recognizer.RecognizeText(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, prepared, primarySaw)
		assert.Equal(t, prepared, secondarySaw)
	})

	t.Run("custom threshold", func(t *testing.T) {
		secondary := secondaryReturning("much longer secondary output")
		recognizer, err := ocr.NewRecognizer(
			primaryReturning("p", 70),
			ocr.WithSecondary(secondary),
			ocr.WithConfidenceThreshold(80),
			ocr.WithPreprocessor(&mock.MockPreprocessor{}),
		)
		require.NoError(t, err)

		text, err := recognizer.RecognizeText(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, "much longer secondary output", text)
	})

	t.Run("nil primary rejected", func(t *testing.T) {
		_, err := ocr.NewRecognizer(nil)
		assert.Error(t, err)
	})
}
