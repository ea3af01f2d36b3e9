package services

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxBaseNameLen = 100

// sanitizeFileName reduces an arbitrary client-supplied name to a safe ASCII
// one: path components stripped, diacritics folded, anything outside
// [a-z0-9._-] collapsed to '-'.
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, ext)

	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}

	for utf8.RuneCountInString(base)+len(ext) > maxBaseNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

// genStorageKey: "files/YYYY/MM/DD/<uuid>/<filename>" — the random segment
// keeps the key distinct from the record identifier and collision-free.
func genStorageKey(fileName string) string {
	now := time.Now().UTC()
	return fmt.Sprintf(
		"files/%04d/%02d/%02d/%s/%s",
		now.Year(), int(now.Month()), now.Day(),
		uuid.NewString(),
		fileName,
	)
}

// fileExtension returns the lowercase extension without the leading dot.
func fileExtension(fileName string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(fileName)), ".")
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
