package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Encoding
	}{
		{
			"utf-8 BOM wins over declaration",
			append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<?xml version="1.0" encoding="windows-1252"?><rss/>`)...),
			EncodingUTF8,
		},
		{
			"declared windows-1252",
			[]byte(`<?xml version="1.0" encoding="windows-1252"?><rss/>`),
			EncodingWindows1252,
		},
		{
			"declared cp1252 alias",
			[]byte(`<?xml version="1.0" encoding="CP1252"?><rss/>`),
			EncodingWindows1252,
		},
		{
			"declared iso-8859-1",
			[]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><rss/>`),
			EncodingISO88591,
		},
		{
			"declared utf-8",
			[]byte(`<?xml version="1.0" encoding="UTF-8"?><rss/>`),
			EncodingUTF8,
		},
		{
			"no declaration, valid utf-8 bytes",
			[]byte(`<rss><channel><title>café</title></channel></rss>`),
			EncodingUTF8,
		},
		{
			"no declaration, invalid utf-8 falls back to windows-1252",
			[]byte{'<', 'a', '>', 0xE9, '<', '/', 'a', '>'},
			EncodingWindows1252,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectEncoding(tt.data))
		})
	}
}

func TestDecodeValidUTF8PassesThrough(t *testing.T) {
	// A feed lying in its declaration must not be double-decoded.
	in := []byte(`<?xml version="1.0" encoding="windows-1252"?><a>naïve</a>`)
	out, err := Decode(in, EncodingWindows1252)
	require.NoError(t, err)
	assert.Equal(t, string(in), out)
}

func TestDecodeWindows1252(t *testing.T) {
	// 0x93/0x94 are curly quotes in windows-1252 and invalid as UTF-8.
	in := []byte{0x93, 'e', 'c', 'o', 0x94}
	out, err := Decode(in, EncodingWindows1252)
	require.NoError(t, err)
	assert.Equal(t, "“eco”", out)
}

func TestDecodeISO88591(t *testing.T) {
	in := []byte{'c', 'a', 'f', 0xE9}
	out, err := Decode(in, EncodingISO88591)
	require.NoError(t, err)
	assert.Equal(t, "café", out)
}

func TestDecodeStripsBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<a/>")...)
	out, err := Decode(in, EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, "<a/>", out)
}

func TestDecodeAuto(t *testing.T) {
	in := []byte{'<', 'a', '>', 0xE9, '<', '/', 'a', '>'}
	out, err := DecodeAuto(in)
	require.NoError(t, err)
	assert.Equal(t, "<a>é</a>", out)
}
