// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ocr

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

const (
	// minRecognitionWidth is the narrowest image OCR engines handle well.
	// Narrower inputs are upscaled before recognition.
	minRecognitionWidth = 300

	claheClipLimit = 2.0
	claheTileSize  = 8

	denoiseStrength       = 10
	denoiseTemplateWindow = 7
	denoiseSearchWindow   = 21
)

// ImagePreprocessor normalizes scanned page images with OpenCV.
// The stage order is fixed: grayscale, upscale, contrast equalization,
// denoise, binarize. Reordering degrades recognition, e.g. binarizing
// before denoising turns noise into permanent black specks.
type ImagePreprocessor struct{}

var _ Preprocessor = (*ImagePreprocessor)(nil)

// NewImagePreprocessor creates the standard preprocessing pipeline.
func NewImagePreprocessor() *ImagePreprocessor {
	return &ImagePreprocessor{}
}

// Prepare runs the pipeline and returns the result as PNG bytes.
func (p *ImagePreprocessor) Prepare(imageBytes []byte) ([]byte, error) {
	src, err := gocv.IMDecode(imageBytes, gocv.IMReadColor)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if src.Empty() {
		return nil, errors.New("image could not be decoded")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	if gray.Cols() < minRecognitionWidth {
		scale := float64(minRecognitionWidth) / float64(gray.Cols())
		gocv.Resize(gray, &gray, image.Point{}, scale, scale, gocv.InterpolationCubic)
	}

	clahe := gocv.NewCLAHEWithParams(claheClipLimit, image.Pt(claheTileSize, claheTileSize))
	defer clahe.Close()
	clahe.Apply(gray, &gray)

	gocv.FastNlMeansDenoisingWithParams(gray, &gray, denoiseStrength, denoiseTemplateWindow, denoiseSearchWindow)

	gocv.Threshold(gray, &gray, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	buf, err := gocv.IMEncode(gocv.PNGFileExt, gray)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}
