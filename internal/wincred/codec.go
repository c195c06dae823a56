package wincred

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/systmms/credstore/pkg/keystore"
)

// Secrets are stored as UTF-16, because that is the native charset for
// Windows strings; it lets the credential be edited in the Windows
// native UI. The stored form is a little-endian byte blob with no
// terminating unit, because the store itself treats the blob as opaque
// bytes.

const (
	surrHigh = 0xD800 // start of the high-surrogate range
	surrLow  = 0xDC00 // start of the low-surrogate range
	surrEnd  = 0xE000 // first code unit past the surrogate ranges
)

// encodeBlob converts a secret to its stored form: one little-endian
// byte pair per UTF-16 code unit.
func encodeBlob(secret string) []byte {
	units := utf16.Encode([]rune(secret))
	blob := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(blob[2*i:], u)
	}
	return blob
}

// decodeBlob strictly decodes a stored blob back to text. Third parties
// may write blobs of odd length or with invalid code-unit sequences;
// those fail with a BadEncodingError carrying the original bytes, never
// a lossy best-effort string, so callers can still inspect what was
// actually stored.
func decodeBlob(blob []byte) (string, error) {
	if len(blob)%2 != 0 {
		return "", badEncoding(blob)
	}
	units := make([]uint16, len(blob)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(blob[2*i:])
	}
	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u < surrHigh || u >= surrEnd:
			runes = append(runes, rune(u))
		case u < surrLow && i+1 < len(units) && units[i+1] >= surrLow && units[i+1] < surrEnd:
			runes = append(runes, utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
		default:
			// unpaired or reversed surrogate
			return "", badEncoding(blob)
		}
	}
	return string(runes), nil
}

func badEncoding(blob []byte) error {
	// The blob may view vault-owned memory that is released after the
	// call returns, so the error carries its own copy.
	return keystore.BadEncodingError{Raw: append([]byte(nil), blob...)}
}
