package builder

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// quoteStyle selects the escape rules of a string literal.
type quoteStyle int

const (
	quoted quoteStyle = iota
	slashy
	dollarSlashy
)

// delimiter describes how one literal form opens and closes.
type delimiter struct {
	open, close string
	style       quoteStyle
	multiline   bool
}

var (
	tripleSingle = delimiter{open: "'''", close: "'''", style: quoted, multiline: true}
	tripleDouble = delimiter{open: `"""`, close: `"""`, style: quoted, multiline: true}
	single       = delimiter{open: "'", close: "'", style: quoted}
	double       = delimiter{open: `"`, close: `"`, style: quoted}
	slash        = delimiter{open: "/", close: "/", style: slashy, multiline: true}
	dollarSlash  = delimiter{open: "$/", close: "/$", style: dollarSlashy, multiline: true}
)

// delimiterOf recognizes the opening delimiter of a literal. Longer forms
// are tried first.
func delimiterOf(text string) delimiter {
	for _, d := range []delimiter{tripleSingle, tripleDouble, dollarSlash, single, double, slash} {
		if strings.HasPrefix(text, d.open) {
			return d
		}
	}
	return double
}

// decodeStringLiteral strips the delimiters of a complete string literal
// and resolves its escapes.
func decodeStringLiteral(text string) string {
	d := delimiterOf(text)
	if d.multiline {
		text = removeCR(text)
	}
	if len(text) < len(d.open)+len(d.close) {
		return ""
	}
	return replaceEscapes(text[len(d.open):len(text)-len(d.close)], d.style)
}

// Interpolated string fragments. The lexer leaves the opening delimiter on
// the first fragment, the closing one on the last, and the $ that starts
// each value on the fragment before it.

func clearGStringStart(text string, d delimiter) string {
	text = strings.TrimPrefix(text, d.open)
	text = strings.TrimSuffix(text, "$")
	return replaceEscapes(removeCR(text), d.style)
}

func clearGStringPart(text string, d delimiter) string {
	text = strings.TrimSuffix(text, "$")
	return replaceEscapes(removeCR(text), d.style)
}

func clearGStringEnd(text string, d delimiter) string {
	text = strings.TrimSuffix(text, d.close)
	return replaceEscapes(removeCR(text), d.style)
}

func removeCR(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

var standardEscapes = map[byte]rune{
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'f':  '\f',
	'r':  '\r',
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
}

// replaceEscapes resolves the escapes of a literal body in one left to
// right pass, so a decoded backslash never starts a second escape.
func replaceEscapes(text string, style quoteStyle) string {
	if !strings.ContainsAny(text, `\$`) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		switch {
		case text[i] == '\\':
			i += decodeEscape(text[i:], style, &sb)
		case style == dollarSlashy && text[i] == '$' && i+1 < len(text) && (text[i+1] == '$' || text[i+1] == '/'):
			sb.WriteByte(text[i+1])
			i += 2
		default:
			sb.WriteByte(text[i])
			i++
		}
	}
	return sb.String()
}

// decodeEscape writes the value of the escape at the start of s and returns
// how many bytes it used. Unknown escapes keep their backslash.
func decodeEscape(s string, style quoteStyle, sb *strings.Builder) int {
	if r, ok := unicodeEscape(s); ok {
		sb.WriteRune(r)
		return 6
	}
	switch style {
	case slashy:
		if strings.HasPrefix(s, `\/`) {
			sb.WriteByte('/')
			return 2
		}
		sb.WriteByte('\\')
		return 1
	case dollarSlashy:
		sb.WriteByte('\\')
		return 1
	}
	if len(s) < 2 {
		sb.WriteByte('\\')
		return 1
	}
	switch {
	case s[1] == '$':
		sb.WriteByte('$')
		return 2
	case s[1] == '\n':
		return 2
	case strings.HasPrefix(s[1:], "\r\n"):
		return 3
	}
	if r, n := octalEscape(s); n > 0 {
		sb.WriteRune(r)
		return n
	}
	if r, ok := standardEscapes[s[1]]; ok {
		sb.WriteRune(r)
		return 2
	}
	sb.WriteByte('\\')
	return 1
}

func unicodeEscape(s string) (rune, bool) {
	if len(s) < 6 || s[1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// octalEscape matches \[0-3]?[0-7]?[0-7].
func octalEscape(s string) (rune, int) {
	digits := 0
	for digits < 3 && 1+digits < len(s) && s[1+digits] >= '0' && s[1+digits] <= '7' {
		digits++
	}
	if digits == 3 && s[1] > '3' {
		digits = 2
	}
	if digits == 0 {
		return 0, 0
	}
	v, _ := strconv.ParseUint(s[1:1+digits], 8, 32)
	return rune(v), 1 + digits
}

// parseInteger converts an integer literal, with an optional leading minus,
// to int32, int64 or *big.Int. A suffix (i, l, g) forces the type; without
// one the narrowest type that holds the value is used.
func parseInteger(text string) (any, error) {
	s := strings.ReplaceAll(text, "_", "")
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var suffix byte
	if n := len(s); n > 0 {
		switch c := s[n-1] | 0x20; c {
		case 'l', 'g', 'i':
			suffix = c
			s = s[:n-1]
		}
	}

	base := 10
	switch {
	case isHexLiteral(s):
		base, s = 16, s[2:]
	case len(s) > 2 && (s[:2] == "0b" || s[:2] == "0B"):
		base, s = 2, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, s = 8, s[1:]
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("invalid integer literal %s", text)
	}
	if negative {
		v.Neg(v)
	}

	switch suffix {
	case 'i':
		if !v.IsInt64() || v.Int64() < math.MinInt32 || v.Int64() > math.MaxInt32 {
			return nil, fmt.Errorf("integer literal %s is out of range for int", text)
		}
		return int32(v.Int64()), nil
	case 'l':
		if !v.IsInt64() {
			return nil, fmt.Errorf("integer literal %s is out of range for long", text)
		}
		return v.Int64(), nil
	case 'g':
		return v, nil
	}
	if v.IsInt64() {
		if n := v.Int64(); n >= math.MinInt32 && n <= math.MaxInt32 {
			return int32(n), nil
		}
		return v.Int64(), nil
	}
	return v, nil
}

func isHexLiteral(s string) bool {
	return len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X")
}

// parseDecimal converts a decimal literal. A suffix of f or d selects
// float32 or float64; otherwise the exact value is kept as a *big.Rat.
func parseDecimal(text string) (any, error) {
	s := strings.ReplaceAll(text, "_", "")
	var suffix byte
	if n := len(s); n > 0 {
		switch c := s[n-1] | 0x20; c {
		case 'f', 'd', 'g':
			suffix = c
			s = s[:n-1]
		}
	}
	switch suffix {
	case 'f':
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid decimal literal %s", text)
		}
		return float32(v), nil
	case 'd':
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid decimal literal %s", text)
		}
		return v, nil
	}
	v, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid decimal literal %s", text)
	}
	return v, nil
}

// zeroValue returns the default value of a primitive type name, or nil.
func zeroValue(typeName string) any {
	switch typeName {
	case "int":
		return int32(0)
	case "long":
		return int64(0)
	case "short":
		return int16(0)
	case "byte":
		return int8(0)
	case "char":
		return uint16(0)
	case "float":
		return float32(0)
	case "double":
		return float64(0)
	case "boolean":
		return false
	}
	return nil
}
