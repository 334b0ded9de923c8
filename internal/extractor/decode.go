package extractor

import (
	"bytes"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// binarySniffLen is how many leading bytes are probed for NUL when deciding
// whether a file is text at all.
const binarySniffLen = 8000

// readText reads a file and decodes it to valid UTF-8 on a best-effort
// basis. UTF-8 and UTF-16 byte order marks are honored, and invalid byte
// sequences are dropped rather than reported.
//
// The second return value is false for unreadable or binary-looking
// content; such files stay in the inventory but contribute no symbols.
func readText(path string) (string, bool) {
	data, err := os.ReadFile(path) //nolint:gosec // Paths come from the walked scan root
	if err != nil {
		return "", false
	}

	// UTF-16 text is full of NUL bytes, so only sniff for binary content
	// when no byte order mark announces a wide encoding.
	hasBOM := bytes.HasPrefix(data, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !hasBOM {
		sniff := data
		if len(sniff) > binarySniffLen {
			sniff = sniff[:binarySniffLen]
		}
		if bytes.IndexByte(sniff, 0x00) >= 0 {
			return "", false
		}
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		// Fall back to raw bytes with invalid sequences stripped.
		decoded = data
	}

	return strings.ToValidUTF8(string(decoded), ""), true
}
