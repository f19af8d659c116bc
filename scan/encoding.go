package scan

import (
	"strings"

	"github.com/quintans/faults"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is a client character encoding.
// It knows how many bytes each character takes, so that continuation bytes
// are never mistaken for quotes or placeholders.
type Encoding struct {
	name    string
	charLen func(text []byte, i int) int
	codec   encoding.Encoding
	// valid rejects encoded text that charLen would not split correctly
	valid func(text []byte) bool
}

func (e *Encoding) Name() string {
	if e == nil {
		return SQL_ASCII
	}
	return e.name
}

// CharLen returns the byte length of the character starting at text[i].
// A nil Encoding is single byte.
func (e *Encoding) CharLen(text []byte, i int) int {
	if e == nil || e.charLen == nil || text[i] < 0x80 {
		return 1
	}
	n := e.charLen(text, i)
	if rest := len(text) - i; n > rest {
		n = rest
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Encode converts Go text to this encoding.
// Encodings without a codec pass the bytes through.
func (e *Encoding) Encode(s string) ([]byte, error) {
	if e == nil || e.codec == nil {
		return []byte(s), nil
	}
	b, err := e.codec.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, faults.Wrap(err)
	}
	if e.valid != nil && !e.valid(b) {
		return nil, faults.Errorf("text has characters outside of %s", e.name)
	}
	return b, nil
}

// Decode converts text in this encoding to Go text.
func (e *Encoding) Decode(b []byte) (string, error) {
	if e == nil || e.codec == nil {
		return string(b), nil
	}
	s, err := e.codec.NewDecoder().Bytes(b)
	if err != nil {
		return "", faults.Wrap(err)
	}
	return string(s), nil
}

const (
	SQL_ASCII = "SQL_ASCII"
	LATIN1    = "LATIN1"
	WIN1252   = "WIN1252"
	UTF8      = "UTF8"
	EUC_JP    = "EUC_JP"
	EUC_CN    = "EUC_CN"
	EUC_KR    = "EUC_KR"
	EUC_TW    = "EUC_TW"
	SJIS      = "SJIS"
	BIG5      = "BIG5"
	GBK       = "GBK"
	UHC       = "UHC"
	GB18030   = "GB18030"
	JOHAB     = "JOHAB"
)

func within(c, lo, hi byte) bool {
	return c >= lo && c <= hi
}

func utf8Len(text []byte, i int) int {
	c := text[i]
	switch {
	case c >= 0xfc:
		return 6
	case c >= 0xf8:
		return 5
	case c >= 0xf0:
		return 4
	case c >= 0xe0:
		return 3
	case c >= 0xc0:
		return 2
	}
	return 1
}

func eucJPLen(text []byte, i int) int {
	c := text[i]
	switch {
	case c == 0x8f:
		return 3
	case c == 0x8e, within(c, 0xa1, 0xfe):
		return 2
	}
	return 1
}

func eucLen(text []byte, i int) int {
	if within(text[i], 0xa1, 0xfe) {
		return 2
	}
	return 1
}

// eucValid accepts only ASCII and pairs of bytes in 0xa1-0xfe.
// The GBK and CP949 codecs also produce lead bytes below 0xa1.
func eucValid(text []byte) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < 0x80 {
			continue
		}
		if i+1 >= len(text) || !within(text[i], 0xa1, 0xfe) || !within(text[i+1], 0xa1, 0xfe) {
			return false
		}
		i++
	}
	return true
}

func eucTWLen(text []byte, i int) int {
	c := text[i]
	switch {
	case c == 0x8e:
		return 4
	case within(c, 0xa1, 0xfe):
		return 2
	}
	return 1
}

func sjisLen(text []byte, i int) int {
	c := text[i]
	if within(c, 0x81, 0x9f) || within(c, 0xe0, 0xfc) {
		return 2
	}
	return 1
}

// big5, gbk and uhc share the lead byte range
func doubleByteLen(text []byte, i int) int {
	if within(text[i], 0x81, 0xfe) {
		return 2
	}
	return 1
}

func gb18030Len(text []byte, i int) int {
	if !within(text[i], 0x81, 0xfe) {
		return 1
	}
	if i+1 < len(text) && within(text[i+1], 0x30, 0x39) {
		return 4
	}
	return 2
}

func johabLen(text []byte, i int) int {
	c := text[i]
	if within(c, 0x84, 0xd3) || within(c, 0xd8, 0xde) || within(c, 0xe0, 0xf9) {
		return 2
	}
	return 1
}

var encodings = map[string]*Encoding{
	SQL_ASCII: {name: SQL_ASCII},
	LATIN1:    {name: LATIN1, codec: charmap.ISO8859_1},
	WIN1252:   {name: WIN1252, codec: charmap.Windows1252},
	UTF8:      {name: UTF8, charLen: utf8Len, codec: unicode.UTF8},
	EUC_JP:    {name: EUC_JP, charLen: eucJPLen, codec: japanese.EUCJP},
	// GBK is a superset of GB2312, the character set of EUC_CN
	EUC_CN:  {name: EUC_CN, charLen: eucLen, codec: simplifiedchinese.GBK, valid: eucValid},
	EUC_KR:  {name: EUC_KR, charLen: eucLen, codec: korean.EUCKR, valid: eucValid},
	EUC_TW:  {name: EUC_TW, charLen: eucTWLen},
	SJIS:    {name: SJIS, charLen: sjisLen, codec: japanese.ShiftJIS},
	BIG5:    {name: BIG5, charLen: doubleByteLen, codec: traditionalchinese.Big5},
	GBK:     {name: GBK, charLen: doubleByteLen, codec: simplifiedchinese.GBK},
	UHC:     {name: UHC, charLen: doubleByteLen, codec: korean.EUCKR},
	GB18030: {name: GB18030, charLen: gb18030Len, codec: simplifiedchinese.GB18030},
	JOHAB:   {name: JOHAB, charLen: johabLen},
}

var aliases = map[string]string{
	"SQLASCII":    SQL_ASCII,
	"ASCII":       SQL_ASCII,
	"USASCII":     SQL_ASCII,
	"BINARY":      SQL_ASCII,
	"LATIN1":      LATIN1,
	"ISO88591":    LATIN1,
	"WIN1252":     WIN1252,
	"WINDOWS1252": WIN1252,
	"CP1252":      WIN1252,
	"UTF8":        UTF8,
	"UNICODE":     UTF8,
	"UTF8MB3":     UTF8,
	"UTF8MB4":     UTF8,
	"EUCJP":       EUC_JP,
	"UJIS":        EUC_JP,
	"EUCJPMS":     EUC_JP,
	"EUCCN":       EUC_CN,
	"GB2312":      EUC_CN,
	"EUCKR":       EUC_KR,
	"EUCTW":       EUC_TW,
	"SJIS":        SJIS,
	"SHIFTJIS":    SJIS,
	"MSKANJI":     SJIS,
	"CP932":       SJIS,
	"WIN932":      SJIS,
	"BIG5":        BIG5,
	"CP950":       BIG5,
	"WIN950":      BIG5,
	"GBK":         GBK,
	"CP936":       GBK,
	"WIN936":      GBK,
	"UHC":         UHC,
	"CP949":       UHC,
	"WIN949":      UHC,
	"GB18030":     GB18030,
	"JOHAB":       JOHAB,
}

func normalize(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "").Replace(name)
}

// LookupEncoding finds a client encoding by name or alias, ignoring case, '-' and '_'.
func LookupEncoding(name string) (*Encoding, error) {
	canonical, ok := aliases[normalize(name)]
	if !ok {
		return nil, faults.Errorf("unknown client encoding %q", name)
	}
	return encodings[canonical], nil
}

// DefaultEncoding is UTF8.
func DefaultEncoding() *Encoding {
	return encodings[UTF8]
}
