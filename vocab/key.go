package vocab

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeKey returns the trie key for a record identifier: NFC, lower-cased.
//
// Keys must be non-empty valid UTF-8 without NUL; every rune of a key becomes
// a single child entry letter.
func NormalizeKey(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if !utf8.ValidString(id) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidKey, id)
	}
	if strings.IndexByte(id, 0) >= 0 {
		return "", fmt.Errorf("%w: %q contains NUL", ErrInvalidKey, id)
	}
	return cases.Lower(language.Und).String(norm.NFC.String(id)), nil
}
