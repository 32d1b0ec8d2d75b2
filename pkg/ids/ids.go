package ids

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a prefixed identifier such as "ord_6f1c...". The prefix keeps
// stored blobs greppable; the body is a dash-free UUID.
func New(prefix string) string {
	body := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix == "" {
		return body
	}
	return prefix + "_" + body
}

// Prefix extracts the prefix of an identifier produced by New, or "" when
// the id carries none.
func Prefix(id string) string {
	idx := strings.IndexByte(id, '_')
	if idx <= 0 {
		return ""
	}
	return id[:idx]
}
