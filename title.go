package md2site

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// FormatTitle turns a file name into a display title.
// The final extension is removed, the rest is split on spaces and
// underscores, and each word gets an upper-case first letter. Empty words
// produced by repeated separators are dropped.
//
//	FormatTitle("hello_world.md") // "Hello World"
//	FormatTitle("a.b.c.txt")      // "A.b.c"
func FormatTitle(name string) string {
	stem := fileutil.TrimExt(name)

	words := strings.FieldsFunc(stem, func(r rune) bool {
		return r == ' ' || r == '_'
	})
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

// upperFirst upper-cases the first rune of s and leaves the rest untouched.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
