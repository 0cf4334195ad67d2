package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader detects the encoding of the input and returns a reader that
// decodes the content to UTF-8. Spreadsheet tools on Russian-locale Windows
// commonly save CSV as windows-1251, so Cyrillic single-byte charsets are
// first-class here.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Valid UTF-8 passes through as-is
//  3. Heuristic detection via chardet
//  4. Fallback to windows-1251
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	detector := chardet.NewTextDetector()

	result, detectErr := detector.DetectBest(buf)
	if detectErr == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "windows-1251":
			return transform.NewReader(br, charmap.Windows1251.NewDecoder()), nil
		case "KOI8-R":
			return transform.NewReader(br, charmap.KOI8R.NewDecoder()), nil
		case "ISO-8859-5":
			return transform.NewReader(br, charmap.ISO8859_5.NewDecoder()), nil
		case "ISO-8859-1", "windows-1252":
			return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1251.NewDecoder()), nil
}
