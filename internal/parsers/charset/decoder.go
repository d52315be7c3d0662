package charset

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding represents a text encoding.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1252 Encoding = "windows-1252"
	EncodingISO88591    Encoding = "iso-8859-1"
)

var declRe = regexp.MustCompile(`<\?xml[^?]*encoding=["']([^"']+)["'][^?]*\?>`)

// DetectEncoding detects the encoding of a feed body from its BOM, XML
// declaration, or byte validity. Shopping feeds in the wild are UTF-8 or one
// of the western single-byte encodings.
func DetectEncoding(data []byte) Encoding {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return EncodingUTF8
	}

	head := data
	if len(head) > 200 {
		head = head[:200]
	}
	if match := declRe.FindSubmatch(head); len(match) > 1 {
		switch strings.ToLower(string(match[1])) {
		case "windows-1252", "cp1252":
			return EncodingWindows1252
		case "iso-8859-1", "latin1", "latin-1":
			return EncodingISO88591
		case "utf-8", "utf8":
			return EncodingUTF8
		}
	}

	if utf8.Valid(data) {
		return EncodingUTF8
	}
	return EncodingWindows1252
}

// Decode converts a byte buffer from the given encoding to a UTF-8 string.
// Valid UTF-8 input passes through untouched regardless of the declared
// encoding, which protects against feeds that lie in their XML declaration.
func Decode(data []byte, enc Encoding) (string, error) {
	data = stripBOM(data)

	if utf8.Valid(data) {
		return string(data), nil
	}

	switch enc {
	case EncodingISO88591:
		return decodeCharmap(data, charmap.ISO8859_1)
	default:
		return decodeCharmap(data, charmap.Windows1252)
	}
}

// DecodeAuto detects the encoding and decodes in one step.
func DecodeAuto(data []byte) (string, error) {
	return Decode(data, DetectEncoding(data))
}

func decodeCharmap(data []byte, cm *charmap.Charmap) (string, error) {
	reader := transform.NewReader(strings.NewReader(string(data)), cm.NewDecoder())
	result, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
