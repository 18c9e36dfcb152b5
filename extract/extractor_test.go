package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/querent/core"
)

// fakeDocument is an in-memory Document for tests.
type fakeDocument struct {
	texts    []string
	textErrs map[int]error

	mu     sync.Mutex
	closed bool
}

func (d *fakeDocument) PageCount() int {
	return len(d.texts)
}

func (d *fakeDocument) PageText(page int) (string, error) {
	if err := d.textErrs[page]; err != nil {
		return "", err
	}
	return d.texts[page], nil
}

func (d *fakeDocument) PageImage(page int) ([]byte, error) {
	return []byte(fmt.Sprintf("image-%d", page)), nil
}

func (d *fakeDocument) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// fakeRecognizer maps rendered page bytes to recognized text.
type fakeRecognizer struct {
	texts map[string]string
	errs  map[string]error
}

func (r *fakeRecognizer) RecognizeText(ctx context.Context, image []byte) (string, error) {
	if err := r.errs[string(image)]; err != nil {
		return "", err
	}
	return r.texts[string(image)], nil
}

func openerFor(doc Document) Opener {
	return func(data []byte) (Document, error) {
		return doc, nil
	}
}

func failingOpener(data []byte) (Document, error) {
	return nil, errors.New("malformed payload")
}

func newTestExtractor(t *testing.T, recognizer TextRecognizer, opts ...Option) *Extractor {
	t.Helper()
	e, err := NewExtractor(recognizer, opts...)
	require.NoError(t, err)
	t.Cleanup(e.Release)
	return e
}

func TestExtractDirect(t *testing.T) {
	ctx := context.Background()
	longText := strings.Repeat("credit history data ", 5) // 60 non-space chars

	t.Run("text layer read in page order", func(t *testing.T) {
		doc := &fakeDocument{texts: []string{longText, "page two", "page three"}}
		e := newTestExtractor(t, &fakeRecognizer{}, WithPDFOpener(openerFor(doc)))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "report.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		require.Len(t, pages, 3)
		for i, page := range pages {
			assert.Equal(t, i+1, page.PageNumber)
			assert.Equal(t, core.MethodDirect, page.Method)
			assert.Equal(t, "report.pdf", page.SourceID)
		}
		assert.Equal(t, "page two", pages[1].Text)
	})

	t.Run("failing page omitted", func(t *testing.T) {
		doc := &fakeDocument{
			texts:    []string{longText, "broken", "page three"},
			textErrs: map[int]error{1: errors.New("damaged xref")},
		}
		e := newTestExtractor(t, &fakeRecognizer{}, WithPDFOpener(openerFor(doc)))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "report.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, 1, pages[0].PageNumber)
		assert.Equal(t, 3, pages[1].PageNumber)
	})

	t.Run("blank pages omitted", func(t *testing.T) {
		doc := &fakeDocument{texts: []string{longText, "   \n\t ", "tail"}}
		e := newTestExtractor(t, &fakeRecognizer{}, WithPDFOpener(openerFor(doc)))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "report.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, 3, pages[1].PageNumber)
	})
}

func TestExtractScanned(t *testing.T) {
	ctx := context.Background()

	t.Run("sparse text layer falls back to recognition", func(t *testing.T) {
		doc := &fakeDocument{texts: []string{"a b", "", "c"}}
		recognizer := &fakeRecognizer{texts: map[string]string{
			"image-0": "first recognized page",
			"image-1": "second recognized page",
			"image-2": "third recognized page",
		}}
		e := newTestExtractor(t, recognizer, WithPDFOpener(openerFor(doc)))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "scan.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		require.Len(t, pages, 3)
		for i, page := range pages {
			assert.Equal(t, i+1, page.PageNumber)
			assert.Equal(t, core.MethodOCR, page.Method)
		}
		assert.Equal(t, "second recognized page", pages[1].Text)
	})

	t.Run("failed recognition omits page", func(t *testing.T) {
		doc := &fakeDocument{texts: []string{"", "", ""}}
		recognizer := &fakeRecognizer{
			texts: map[string]string{"image-0": "head", "image-2": "tail"},
			errs:  map[string]error{"image-1": errors.New("engine crashed")},
		}
		e := newTestExtractor(t, recognizer, WithPDFOpener(openerFor(doc)))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "scan.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, 1, pages[0].PageNumber)
		assert.Equal(t, 3, pages[1].PageNumber)
	})

	t.Run("many pages keep order", func(t *testing.T) {
		const pageCount = 12
		texts := make([]string, pageCount)
		recognized := make(map[string]string, pageCount)
		for i := 0; i < pageCount; i++ {
			recognized[fmt.Sprintf("image-%d", i)] = fmt.Sprintf("page %d text", i+1)
		}
		doc := &fakeDocument{texts: texts}
		e := newTestExtractor(t, &fakeRecognizer{texts: recognized},
			WithPDFOpener(openerFor(doc)), WithPoolSize(4))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "scan.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		require.Len(t, pages, pageCount)
		for i, page := range pages {
			assert.Equal(t, i+1, page.PageNumber)
			assert.Equal(t, fmt.Sprintf("page %d text", i+1), page.Text)
		}
	})
}

func TestExtractModeProbe(t *testing.T) {
	ctx := context.Background()

	t.Run("threshold met on probed pages", func(t *testing.T) {
		// 50 non-whitespace characters split across the first two pages.
		doc := &fakeDocument{texts: []string{
			strings.Repeat("x", 25),
			strings.Repeat("y", 25),
			"",
		}}
		e := newTestExtractor(t, &fakeRecognizer{}, WithPDFOpener(openerFor(doc)))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "d.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, core.MethodDirect, pages[0].Method)
	})

	t.Run("one character short goes to recognition", func(t *testing.T) {
		doc := &fakeDocument{texts: []string{strings.Repeat("x", 49), "", ""}}
		recognizer := &fakeRecognizer{texts: map[string]string{"image-0": "ocr text"}}
		e := newTestExtractor(t, recognizer, WithPDFOpener(openerFor(doc)))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "d.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, core.MethodOCR, pages[0].Method)
	})

	t.Run("text beyond probe window ignored", func(t *testing.T) {
		// Page 4 is rich in text but only the first three pages vote.
		doc := &fakeDocument{texts: []string{"", "", "", strings.Repeat("z", 200)}}
		recognizer := &fakeRecognizer{texts: map[string]string{"image-3": "late text"}}
		e := newTestExtractor(t, recognizer, WithPDFOpener(openerFor(doc)))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "d.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, core.MethodOCR, pages[0].Method)
		assert.Equal(t, 4, pages[0].PageNumber)
	})
}

func TestExtractEdgeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("unopenable document yields empty sequence", func(t *testing.T) {
		e := newTestExtractor(t, &fakeRecognizer{}, WithPDFOpener(failingOpener))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "corrupt.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("zero pages yields empty sequence", func(t *testing.T) {
		doc := &fakeDocument{}
		e := newTestExtractor(t, &fakeRecognizer{}, WithPDFOpener(openerFor(doc)))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "empty.pdf", Kind: core.KindPDF})
		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("image query recognizes a single page", func(t *testing.T) {
		doc := &fakeDocument{texts: []string{""}}
		recognizer := &fakeRecognizer{texts: map[string]string{"image-0": "photo contents"}}
		e := newTestExtractor(t, recognizer, WithImageOpener(openerFor(doc)))

		pages, err := e.Extract(ctx, core.DocumentQuery{Name: "photo.png", Kind: core.KindImage})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, 1, pages[0].PageNumber)
		assert.Equal(t, core.MethodOCR, pages[0].Method)
		assert.Equal(t, "photo contents", pages[0].Text)
	})

	t.Run("text kind rejected", func(t *testing.T) {
		e := newTestExtractor(t, &fakeRecognizer{})
		_, err := e.Extract(ctx, core.DocumentQuery{Name: "q", Kind: core.KindText})
		assert.ErrorIs(t, err, core.ErrInvalidQueryKind)
	})

	t.Run("nil recognizer rejected", func(t *testing.T) {
		_, err := NewExtractor(nil)
		assert.Error(t, err)
	})
}
