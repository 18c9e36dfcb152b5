package badger

import (
	"fmt"

	"github.com/poiesic/querent/core"
)

// Key prefixes for different data types
const (
	embeddingPrefix = "embrec"
)

// makeEmbeddingKey generates a key for a cached embedding by ID.
func makeEmbeddingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", embeddingPrefix, id))
}
