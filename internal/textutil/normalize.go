package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fold normalizes message text for literal keyword matching. NFKC
// collapses compatibility variants (full-width letters, ligatures and
// similar look-alikes spammers lean on) before lowercasing.
func Fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
