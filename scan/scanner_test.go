package scan

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/traditionalchinese"
)

func scanText(text string) Result {
	return Scan([]byte(text), DefaultEncoding(), DefaultDialect())
}

func TestScanCountsPlaceholders(t *testing.T) {
	r := scanText("SELECT ? , ?")
	assert.Equal(t, Result{Count: 2}, r)
}

func TestScanIgnoresPlaceholderInLiteral(t *testing.T) {
	r := scanText("SELECT * FROM t WHERE s = '?'")
	assert.Equal(t, 0, r.Count)
	assert.False(t, r.MultiStatement)
}

func TestScanIgnoresPlaceholderInIdentifier(t *testing.T) {
	r := scanText(`SELECT "a?b" FROM t WHERE s = ?`)
	assert.Equal(t, 1, r.Count)
}

func TestScanDollarQuote(t *testing.T) {
	r := scanText("INSERT INTO t VALUES ($tag$it's a ? mark$tag$)")
	assert.Equal(t, 0, r.Count)

	// scanning is back to normal right after the closing tag
	r = scanText("INSERT INTO t VALUES ($tag$it's a ? mark$tag$, ?)")
	assert.Equal(t, 1, r.Count)

	r = scanText("SELECT $$a ? b$$, ?, $x$ $$ ? $x$")
	assert.Equal(t, 1, r.Count)

	// a different tag does not close the block
	r = scanText("SELECT $a$ ? $b$ ? $a$ ?")
	assert.Equal(t, 1, r.Count)
}

func TestScanUnterminatedRegions(t *testing.T) {
	tests := []struct {
		text  string
		count int
	}{
		{"SELECT ?, 'open ? literal", 1},
		{`SELECT ?, "open ? identifier`, 1},
		{"SELECT ?, $tag$ never ? closed", 1},
		{"SELECT ?, $ lone dollar ?", 1},
		{"SELECT ?, $tag$ half closed $tag ?", 1},
	}
	for _, tt := range tests {
		r := scanText(tt.text)
		assert.Equal(t, tt.count, r.Count, tt.text)
	}
}

func TestScanMultiStatement(t *testing.T) {
	assert.True(t, scanText("SELECT 1; SELECT 2;").MultiStatement)
	assert.False(t, scanText("SELECT 1;  ").MultiStatement)
	assert.False(t, scanText("SELECT 1;\n\t").MultiStatement)
	assert.False(t, scanText("SELECT ';'").MultiStatement)
	assert.False(t, scanText("SELECT $x$;$x$").MultiStatement)
	assert.True(t, scanText("SELECT 1;;").MultiStatement)
	assert.True(t, scanText("SELECT 1; 'x'").MultiStatement)
	assert.True(t, scanText("SELECT 1;表").MultiStatement)
}

func TestScanReturnValue(t *testing.T) {
	r := scanText("{? = call foo(?)}")
	assert.Equal(t, Result{Count: 2, ReturnValue: true}, r)

	r = scanText("  {  ? = call foo(?)}")
	assert.True(t, r.ReturnValue)

	r = scanText("{call foo(?)}")
	assert.False(t, r.ReturnValue)

	r = scanText("SELECT {fn abs(?)}")
	assert.False(t, r.ReturnValue)
}

func TestScanEscapeInLiteral(t *testing.T) {
	d := DefaultDialect()
	// standard conforming strings: backslash is ordinary
	assert.Equal(t, 0, Scan([]byte(`SELECT '\'', ?`), nil, d).Count)
	// E'' literals escape with backslash
	assert.Equal(t, 1, Scan([]byte(`SELECT E'\'', ?`), nil, d).Count)
	assert.Equal(t, 1, Scan([]byte(`SELECT e'\'', ?`), nil, d).Count)
	// a doubled quote keeps the escape of the literal it reopens
	assert.Equal(t, 1, Scan([]byte(`SELECT E'it''s \'', ?`), nil, d).Count)
	// a word ending in E is not a prefix
	assert.Equal(t, 0, Scan([]byte(`SELECT 1 WHERE'\'', ?`), nil, d).Count)

	d.EscapeChar = '\\'
	assert.Equal(t, 1, Scan([]byte(`SELECT '\'', ?`), nil, d).Count)
	assert.Equal(t, 1, Scan([]byte(`SELECT '\\', ?`), nil, d).Count)
}

func TestScanDoubledQuotes(t *testing.T) {
	assert.Equal(t, 1, scanText("SELECT 'it''s ?', ?").Count)
}

func TestScanPgQuoting(t *testing.T) {
	literal := pq.QuoteLiteral(`it's a \ ? mark`)
	require.Contains(t, literal, "E'")
	r := scanText("SELECT " + literal + ", ?")
	assert.Equal(t, 1, r.Count)

	ident := pq.QuoteIdentifier(`we?ird"name`)
	r = scanText("SELECT " + ident + " FROM t WHERE a = ? AND b = ?")
	assert.Equal(t, 2, r.Count)
}

func TestScanMultibyteContinuationBytes(t *testing.T) {
	d := DefaultDialect()
	d.EscapeChar = '\\'

	// the second byte of 表 in Shift JIS is a backslash
	sjis, err := japanese.ShiftJIS.NewEncoder().String("SELECT '表', ?")
	require.NoError(t, err)
	enc, err := LookupEncoding("sjis")
	require.NoError(t, err)
	assert.Equal(t, 1, Scan([]byte(sjis), enc, d).Count)
	// read byte by byte the backslash escapes the closing quote
	assert.Equal(t, 0, Scan([]byte(sjis), nil, d).Count)

	// the second byte of 功 in Big5 is a backslash too
	big5, err := traditionalchinese.Big5.NewEncoder().String("SELECT ?, '功', ?")
	require.NoError(t, err)
	enc, err = LookupEncoding("big5")
	require.NoError(t, err)
	assert.Equal(t, 2, Scan([]byte(big5), enc, d).Count)
}

func TestScanMultibyteNeverMatchesQuotes(t *testing.T) {
	d := Dialect{Placeholder: '?', LiteralQuote: '\'', IdentifierQuote: '`'}
	enc, err := LookupEncoding("SJIS")
	require.NoError(t, err)

	// 0x83 0x60 has a backtick as continuation byte
	text := []byte("SELECT \x83\x60, ?")
	assert.Equal(t, 1, Scan(text, enc, d).Count)
	assert.Equal(t, 0, Scan(text, nil, d).Count)

	// a lead byte at the very end of the text
	assert.Equal(t, 1, Scan([]byte("SELECT ? \x83"), enc, d).Count)
}

func TestScanDisabledConstructs(t *testing.T) {
	d := Dialect{LiteralQuote: '\'', IdentifierQuote: '`', EscapeChar: '\\'}
	assert.Equal(t, 2, Scan([]byte("SELECT $a$ ? $a$ ?"), nil, d).Count)
	assert.Equal(t, 2, Scan([]byte(`SELECT "?" , ?`), nil, d).Count)
	assert.Equal(t, 1, Scan([]byte("SELECT `?` , ?"), nil, d).Count)

	d.Placeholder = ':'
	assert.Equal(t, 1, Scan([]byte("SELECT :, ?"), nil, d).Count)
}

func TestCloseDollarQuote(t *testing.T) {
	text := []byte("$ab$ x $ab$ y")
	end, ok := closeDollarQuote(text, 0, nil, '$')
	require.True(t, ok)
	assert.Equal(t, " y", string(text[end:]))

	_, ok = closeDollarQuote([]byte("$ab$ x $a"), 0, nil, '$')
	assert.False(t, ok)
}
