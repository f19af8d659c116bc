package scan

// Dialect holds the quoting characters the scanner recognizes.
// A zero character disables the construct it introduces.
type Dialect struct {
	// Placeholder marks a parameter. Zero means '?'.
	Placeholder byte
	// LiteralQuote opens and closes a string literal.
	LiteralQuote byte
	// IdentifierQuote opens and closes a quoted identifier. There is no escaping inside.
	IdentifierQuote byte
	// DollarQuote opens a tagged block, $tag$ ... $tag$.
	DollarQuote byte
	// EscapeChar, inside a literal, makes the next character literal.
	// Zero means literals only end on the quote (doubled quotes reopen them).
	EscapeChar byte
	// ExtendedLiteralPrefix, written right before a literal quote, turns backslash
	// into the escape character of that literal when EscapeChar is zero.
	ExtendedLiteralPrefix byte
}

// DefaultDialect is PostgreSQL with standard conforming strings.
func DefaultDialect() Dialect {
	return Dialect{
		Placeholder:           '?',
		LiteralQuote:          '\'',
		IdentifierQuote:       '"',
		DollarQuote:           '$',
		ExtendedLiteralPrefix: 'E',
	}
}

func (d Dialect) placeholder() byte {
	if d.Placeholder == 0 {
		return '?'
	}
	return d.Placeholder
}

func (d Dialect) extendedPrefix(c byte) bool {
	p := d.ExtendedLiteralPrefix
	return p != 0 && (c == p || toUpper(c) == toUpper(p))
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
