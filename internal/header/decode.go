// Package header decodes metadata header values and document bytes to
// UTF-8 text.
package header

import (
	"io"
	"mime"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
)

// encodedWord matches one RFC 2047 encoded word: =?charset?B|Q?text?=
var encodedWord = regexp.MustCompile(`=\?[^?\s]+\?[BbQq]\?[^?\s]*\?=`)

var wordDecoder = &mime.WordDecoder{CharsetReader: charsetReader}

// charsetReader resolves charsets the mime package does not handle itself
// (it only knows utf-8, iso-8859-1 and us-ascii).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	return charset.NewReaderLabel(label, input)
}

// Decode resolves RFC 2047 encoded words in a header value. Text outside
// encoded words is returned unchanged. Whitespace separating two adjacent
// encoded words is dropped. Words that cannot be decoded are kept literally.
func Decode(value string) string {
	if !strings.Contains(value, "=?") {
		return value
	}

	matches := encodedWord.FindAllStringIndex(value, -1)
	if len(matches) == 0 {
		return value
	}

	var b strings.Builder
	last := 0
	prevDecoded := false
	for _, loc := range matches {
		start, end := loc[0], loc[1]
		gap := value[last:start]

		decoded, err := wordDecoder.Decode(value[start:end])
		ok := err == nil

		if !(prevDecoded && ok && strings.TrimSpace(gap) == "") {
			b.WriteString(gap)
		}
		if ok {
			b.WriteString(decoded)
		} else {
			b.WriteString(value[start:end])
		}

		prevDecoded = ok
		last = end
	}
	b.WriteString(value[last:])

	return b.String()
}
