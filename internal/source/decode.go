package source

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decode turns raw file bytes into UTF-8 with LF endings. Visual Studio
// writes C# either as UTF-8 with BOM or as UTF-16 with BOM; files without a
// BOM are taken as UTF-8.
func decode(raw []byte) ([]byte, FileFlags, error) {
	var flags FileFlags
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		raw = raw[len(bomUTF8):]
		flags |= FileHadBOM
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
		if err != nil {
			return nil, 0, fmt.Errorf("decode utf-16: %w", err)
		}
		raw = out
		flags |= FileHadBOM | FileDecodedUTF16
	}
	if out, changed := normalizeCRLF(raw); changed {
		raw = out
		flags |= FileNormalizedCRLF
	}
	return raw, flags, nil
}

// normalizeCRLF replaces CRLF pairs with LF; a lone CR stays.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}
