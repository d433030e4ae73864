package docio

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrLegacyFormat is returned for pre-2007 OLE compound documents (.doc).
var ErrLegacyFormat = errors.New("legacy .doc format is not supported, convert the file to .docx")

// oleMagic is the compound-file binary signature.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}

// cp1252 leaves five byte values undefined. A strict decoder must reject
// them; the x/text charmap passes them through as C1 controls instead.
var cp1252Undefined = [5]byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}

// DecodeText decodes an uploaded text file: UTF-8 when valid, otherwise a
// strict Windows-1252 fallback.
func DecodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	for _, b := range cp1252Undefined {
		if bytes.IndexByte(data, b) >= 0 {
			return "", fmt.Errorf("file is not valid UTF-8 or Windows-1252 text (byte 0x%02X)", b)
		}
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding Windows-1252 text: %w", err)
	}
	return string(out), nil
}

// FileToText extracts plain text from an uploaded file by extension:
// .docx files are unzipped and flattened, everything else is treated as a
// text upload. Legacy OLE binaries are rejected.
func FileToText(filename string, data []byte) (string, error) {
	if bytes.HasPrefix(data, oleMagic) {
		return "", ErrLegacyFormat
	}
	if strings.EqualFold(filepath.Ext(filename), ".docx") {
		doc, err := ReadDocx(data)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", filename, err)
		}
		return doc.PlainText(), nil
	}
	text, err := DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	return text, nil
}
