// filename_test.go
package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "report.pdf", "report.pdf"},
		{"uppercase folded", "My Report.PDF", "my-report.pdf"},
		{"path components stripped", "../../etc/passwd", "passwd"},
		{"windows path stripped", `C:\docs\a b.txt`, "a-b.txt"},
		{"diacritics folded", "résumé.txt", "resume.txt"},
		{"empty", "", "file"},
		{"dot dot", "..", "file"},
		{"only symbols", "????", "file"},
		{"runs of separators collapse", "a__b  c.txt", "a-b-c.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in))
		})
	}
}

func TestSanitizeFileName_Truncates(t *testing.T) {
	long := strings.Repeat("a", 300) + ".txt"
	got := sanitizeFileName(long)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), maxBaseNameLen)
	assert.True(t, strings.HasSuffix(got, ".txt"))
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "txt", fileExtension("a.TXT"))
	assert.Equal(t, "gz", fileExtension("archive.tar.gz"))
	assert.Equal(t, "", fileExtension("noext"))
}

func TestGenStorageKey(t *testing.T) {
	key := genStorageKey("note.txt")

	assert.True(t, strings.HasPrefix(key, "files/"))
	assert.True(t, strings.HasSuffix(key, "/note.txt"))
	assert.Len(t, strings.Split(key, "/"), 6)

	// the random segment keeps concurrent uploads of the same name apart
	assert.NotEqual(t, key, genStorageKey("note.txt"))
}
