package router

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/querent/core"
)

// imageExtensions are the suffixes routed to the image pipeline.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tiff": true,
}

// DetectKind classifies a raw input string as text, PDF, or image.
//
// Only a path naming an existing file is treated as a document; anything
// else is a text query, so a sentence that happens to end in ".pdf" still
// searches as text. Existing files with unrecognized extensions also fall
// back to text.
func DetectKind(input string) core.QueryKind {
	if _, err := os.Stat(input); err != nil {
		return core.KindText
	}
	return KindForFilename(input)
}

// KindForFilename classifies by file extension alone, for inputs that are
// already known to be uploads rather than free text.
func KindForFilename(name string) core.QueryKind {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == ".pdf":
		return core.KindPDF
	case imageExtensions[ext]:
		return core.KindImage
	default:
		return core.KindText
	}
}
