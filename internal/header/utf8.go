package header

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// UTF8BOM is the utf-8 byte-order marker
var UTF8BOM = []byte{'\xef', '\xbb', '\xbf'}

// ToUTF8 returns content as UTF-8. Valid UTF-8 is returned as is, minus a
// leading BOM. Other input is transcoded from the detected charset; when
// detection or conversion fails, invalid sequences are replaced with U+FFFD.
func ToUTF8(content []byte) []byte {
	content = bytes.TrimPrefix(content, UTF8BOM)
	if utf8.Valid(content) {
		return content
	}

	label, err := DetectEncoding(content)
	if err == nil {
		if enc, _ := charset.Lookup(label); enc != nil {
			// keep the nicely decoded part and fall through on error
			if result, _, err := transform.Bytes(enc.NewDecoder(), content); err == nil && utf8.Valid(result) {
				return result
			}
		}
	}

	return bytes.ToValidUTF8(content, []byte("�"))
}

// DetectEncoding guesses the charset of content that is not valid UTF-8.
func DetectEncoding(content []byte) (string, error) {
	if utf8.Valid(content) {
		return "UTF-8", nil
	}

	textDetector := chardet.NewTextDetector()
	detectContent := content
	if len(content) > 0 && len(content) < 1024 {
		// short samples make the detector unstable, so repeat them
		times := 1024 / len(content)
		detectContent = make([]byte, 0, times*len(content))
		for range times {
			detectContent = append(detectContent, content...)
		}
	}

	result, err := textDetector.DetectBest(detectContent)
	if err != nil {
		return "", err
	}

	// PKG-INFO written on Windows is cp1252 far more often than latin-1
	if strings.EqualFold(result.Charset, "ISO-8859-1") {
		return "windows-1252", nil
	}
	return result.Charset, nil
}
