package scan

import (
	"bytes"
)

// Result is what a scan of a statement text found.
type Result struct {
	// Count is the number of placeholders outside literals, identifiers and dollar quoted blocks.
	Count int
	// MultiStatement is set when something other than whitespace follows a statement delimiter.
	MultiStatement bool
	// ReturnValue is set when the first placeholder is the return value of a call escape, {? = call ...}.
	ReturnValue bool
}

type state int

const (
	normal state = iota
	inLiteral
	inIdentifier
)

const (
	noChar    = -1
	multiChar = -2
)

// Scan counts the placeholders of a statement text in one forward pass.
//
// Unterminated literals, identifiers or dollar quoted blocks are not errors:
// they are taken to extend to the end of the text.
func Scan(text []byte, enc *Encoding, d Dialect) Result {
	var r Result
	st := normal
	escaping := false
	var escape byte
	marker := d.placeholder()

	// last non space character seen outside quoting
	var bchar byte
	significant := 0
	delimited := false
	// the two previous characters, for the extended literal prefix
	last, beforeLast := noChar, noChar
	// where the last literal closed; a quote right after it reopens the same literal
	closedAt := -2

	for i := 0; i < len(text); i++ {
		if w := enc.CharLen(text, i); w > 1 {
			if delimited {
				r.MultiStatement = true
			}
			switch st {
			case normal:
				bchar = text[i]
				significant++
			case inLiteral:
				escaping = false
			}
			beforeLast, last = last, multiChar
			i += w - 1
			continue
		}

		c := text[i]
		if delimited && !r.MultiStatement && !isSpace(c) {
			r.MultiStatement = true
		}

		switch st {
		case inLiteral:
			if escaping {
				escaping = false
			} else if escape != 0 && c == escape {
				escaping = true
			} else if c == d.LiteralQuote {
				st = normal
				closedAt = i
			}
		case inIdentifier:
			if c == d.IdentifierQuote {
				st = normal
			}
		default:
			switch {
			case c == marker:
				if r.Count == 0 && bchar == '{' && significant == 1 {
					r.ReturnValue = true
				}
				r.Count++
			case c == ';':
				delimited = true
			case d.DollarQuote != 0 && c == d.DollarQuote:
				end, closed := closeDollarQuote(text, i, enc, d.DollarQuote)
				if !closed {
					return r
				}
				bchar = c
				significant++
				beforeLast, last = noChar, int(c)
				i = end - 1
				continue
			case d.LiteralQuote != 0 && c == d.LiteralQuote:
				st = inLiteral
				escaping = false
				if closedAt != i-1 {
					escape = d.EscapeChar
					if escape == 0 && last >= 0 && d.extendedPrefix(byte(last)) && !isIdentChar(beforeLast) {
						escape = '\\'
					}
				}
			case d.IdentifierQuote != 0 && c == d.IdentifierQuote:
				st = inIdentifier
			}
			if !isSpace(c) {
				bchar = c
				significant++
			}
		}
		beforeLast, last = last, int(c)
	}
	return r
}

// closeDollarQuote is called with text[start] being the dollar quote character.
// It returns the offset just past the closing tag, or false when the block never ends.
func closeDollarQuote(text []byte, start int, enc *Encoding, dollar byte) (int, bool) {
	j := start + 1
	for j < len(text) {
		if text[j] == dollar {
			break
		}
		j += enc.CharLen(text, j)
	}
	if j >= len(text) {
		return len(text), false
	}

	tag := text[start : j+1]
	for k := j + 1; k < len(text); {
		if text[k] == dollar && bytes.HasPrefix(text[k:], tag) {
			return k + len(tag), true
		}
		k += enc.CharLen(text, k)
	}
	return len(text), false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isIdentChar(c int) bool {
	if c == multiChar {
		return true
	}
	if c < 0 {
		return false
	}
	b := byte(c)
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
