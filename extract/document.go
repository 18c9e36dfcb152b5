package extract

// Document is a page-addressable view over an opened query payload.
// Page indices are 0-based. Implementations must be safe for concurrent
// page access; Close invalidates all pages.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText returns the native text layer of a page, empty when the
	// page has none.
	PageText(page int) (string, error)

	// PageImage renders a page as encoded image bytes suitable for OCR.
	PageImage(page int) ([]byte, error)

	// Close releases the underlying document resources.
	Close() error
}

// Opener opens raw payload bytes as a Document.
type Opener func(data []byte) (Document, error)
