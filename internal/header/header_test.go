package header

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Filipe Lains", "Filipe Lains"},
		{"empty", "", ""},
		{"base64 utf-8", "=?utf-8?b?RmlsaXBlIExhw61ucw==?=", "Filipe Laíns"},
		{"quoted printable utf-8", "=?UTF-8?Q?Filipe_La=C3=ADns?=", "Filipe Laíns"},
		{"latin-1", "=?iso-8859-1?q?J=F6rg?= Schmidt", "Jörg Schmidt"},
		{"surrounding text kept", "Author: =?utf-8?q?Ren=C3=A9?= <rene@example.org>", "Author: René <rene@example.org>"},
		{"adjacent words joined", "=?utf-8?q?Ren?= =?utf-8?q?=C3=A9?=", "René"},
		{"folded words joined", "=?utf-8?q?Ren?=\n   =?utf-8?q?=C3=A9?=", "René"},
		{"koi8-r via charset reader", "=?koi8-r?b?8NLJ18XU?=", "Привет"},
		{"windows-1252 via charset reader", "=?windows-1252?q?caf=E9?=", "café"},
		{"literal equals sign", "a=?b", "a=?b"},
		{"malformed base64 kept", "=?utf-8?b?###?=", "=?utf-8?b?###?="},
		{"unknown charset kept", "=?x-no-such-charset?q?abc?=", "=?x-no-such-charset?q?abc?="},
		{
			"space kept next to literal word",
			"=?x-no-such-charset?q?abc?= =?utf-8?q?d?=",
			"=?x-no-such-charset?q?abc?= d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.input))
		})
	}
}

func TestToUTF8(t *testing.T) {
	t.Run("valid utf-8 untouched", func(t *testing.T) {
		in := []byte("Name: café\n")
		assert.Equal(t, in, ToUTF8(in))
	})

	t.Run("bom removed", func(t *testing.T) {
		in := append(append([]byte{}, UTF8BOM...), []byte("Name: foo")...)
		assert.Equal(t, []byte("Name: foo"), ToUTF8(in))
	})

	t.Run("legacy encoding becomes valid utf-8", func(t *testing.T) {
		in := []byte("Metadata-Version: 1.0\nName: foo\nAuthor: Ren\xe9 Dupont\nSummary: caf\xe9 cr\xe8me br\xfbl\xe9e\n")
		out := ToUTF8(in)
		assert.True(t, utf8.Valid(out))
		assert.Contains(t, string(out), "Metadata-Version: 1.0\nName: foo\n")
	})
}

func TestDetectEncoding(t *testing.T) {
	label, err := DetectEncoding([]byte("plain ascii"))
	assert.NoError(t, err)
	assert.Equal(t, "UTF-8", label)
}
