package reader

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// codepageEncodings maps $DWGCODEPAGE values to their text encodings.
// Every listed encoding is an ASCII superset, which is what allows the
// codepage declaration itself to be sniffed before decoding.
var codepageEncodings = map[string]encoding.Encoding{
	"ANSI_874":  charmap.Windows874,
	"ANSI_932":  japanese.ShiftJIS,
	"ANSI_936":  simplifiedchinese.GBK,
	"ANSI_949":  korean.EUCKR,
	"ANSI_950":  traditionalchinese.Big5,
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1255": charmap.Windows1255,
	"ANSI_1256": charmap.Windows1256,
	"ANSI_1257": charmap.Windows1257,
	"ANSI_1258": charmap.Windows1258,
}

// CodepageEncoding returns the text encoding registered for a $DWGCODEPAGE
// value, matching case-insensitively. The writer uses it to re-encode output
// into the codepage the document declares.
func CodepageEncoding(name string) (encoding.Encoding, bool) {
	enc, ok := codepageEncodings[strings.ToUpper(name)]
	return enc, ok
}

// sniffCodepage scans raw file bytes for the $DWGCODEPAGE header variable and
// returns its declared value, or "" when the file does not declare one.
func sniffCodepage(data []byte) string {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		if string(bytes.TrimSpace(line)) != "$DWGCODEPAGE" {
			continue
		}
		// The variable name line is followed by a group code line and the
		// value line.
		if i+2 < len(lines) {
			return string(bytes.TrimSpace(lines[i+2]))
		}
		return ""
	}
	return ""
}

// decodeCodepage converts raw file bytes to UTF-8 according to the declared
// codepage. Unknown or absent codepages (including UTF-8 declarations used by
// newer format versions) pass through unchanged apart from BOM stripping.
func decodeCodepage(data []byte, codepage string) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	enc, ok := CodepageEncoding(codepage)
	if !ok {
		return data, nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
