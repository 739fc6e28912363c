package badger

import (
	"fmt"

	"github.com/cobaltlane/hindsight/core"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix = "chkrec"
)

// makeChunkRecordKey generates a key for a chunk record by ID.
func makeChunkRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}
