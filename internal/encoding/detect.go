// Package encoding turns byte streams of unknown charset into UTF-8.
// Backups come from browsers, mail clients and Windows editors, so UTF-16
// and legacy single-byte encodings all show up in practice.
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

const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r so that its content reads as UTF-8 regardless of the
// source charset. Resolution order: BOM, valid UTF-8 as-is, chardet
// heuristics, Windows-1252 as the last resort.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if decoded, ok := fromBOM(br, buf); ok {
		return decoded, nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	if decoded, ok := fromHeuristics(br, buf); ok {
		return decoded, nil
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

// fromBOM resolves the charset from a byte order mark. The UTF-8 BOM is
// stripped; UTF-16 BOMs select the matching decoder.
func fromBOM(br *bufio.Reader, buf []byte) (io.Reader, bool) {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, true
	case bytes.HasPrefix(buf, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), true
	case bytes.HasPrefix(buf, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), true
	}

	return nil, false
}

// fromHeuristics asks chardet for the most likely charset and maps the ones
// we can decode. UTF-16 without a BOM happens with files saved by some
// Windows tools.
func fromHeuristics(br *bufio.Reader, buf []byte) (io.Reader, bool) {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return nil, false
	}

	switch result.Charset {
	case "UTF-8":
		return br, true
	case "UTF-16LE":
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()), true
	case "UTF-16BE":
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()), true
	case "ISO-8859-1", "windows-1252":
		return transform.NewReader(br, charmap.Windows1252.NewDecoder()), true
	case "ISO-8859-9":
		return transform.NewReader(br, charmap.ISO8859_9.NewDecoder()), true
	}

	return nil, false
}
