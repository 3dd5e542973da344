package builder

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStringLiteral(t *testing.T) {
	tests := []struct {
		name     string
		literal  string
		expected string
	}{
		{"single quoted", `'abc'`, "abc"},
		{"double quoted", `"abc"`, "abc"},
		{"empty", `''`, ""},
		{"standard escapes", `'a\tb\nc\\d\'e\"f'`, "a\tb\nc\\d'e\"f"},
		{"unicode escape", `'\u0041\u00e9'`, "A\u00e9"},
		{"octal escapes", `'\0\101\7\377'`, "\x00A\x07ÿ"},
		{"octal stops after two digits above 3", `'\400'`, " " + "0"},
		{"dollar escape", `"cost \$5"`, "cost $5"},
		{"unknown escape keeps backslash", `'\q'`, `\q`},
		{"escaped backslash is not rescanned", `'\\n'`, `\n`},
		{"line continuation", "'''a\\\nb'''", "ab"},
		{"triple single", "'''line1\nline2'''", "line1\nline2"},
		{"triple double", `"""say "hi""""`, `say "hi"`},
		{"triple removes CR", "'''a\r\nb'''", "a\nb"},
		{"slashy", `/a\/b\d/`, `a/b\d`},
		{"slashy unicode", `/\u0041/`, "A"},
		{"dollar slashy", `$/a$$b$/c\d/$`, `a$b/c\d`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeStringLiteral(tt.literal))
		})
	}
}

// encodeQuoted writes s between the delimiters of a quoted literal using
// only the escapes the decoder understands. Multiline forms keep raw
// newlines.
func encodeQuoted(s string, d delimiter) string {
	quote := rune(d.close[0])
	var sb strings.Builder
	sb.WriteString(d.open)
	for _, r := range s {
		switch {
		case r == '\\' || r == quote:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '$' && quote == '"':
			sb.WriteString(`\$`)
		case r == '\n' && d.multiline:
			sb.WriteByte('\n')
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteString(d.close)
	return sb.String()
}

// encodeSlashy writes s as a slashy or dollar slashy literal. A backslash
// can only be spelled as a unicode escape there, since \u is decoded in
// every style.
func encodeSlashy(s string, d delimiter) string {
	var sb strings.Builder
	sb.WriteString(d.open)
	for _, r := range s {
		switch {
		case r == '\\' || r == '\r':
			fmt.Fprintf(&sb, `\u%04x`, r)
		case r == '/' && d.style == slashy:
			sb.WriteString(`\/`)
		case (r == '/' || r == '$') && d.style == dollarSlashy:
			sb.WriteByte('$')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteString(d.close)
	return sb.String()
}

// randomLiteralText strings together characters that are special in at
// least one literal form.
func randomLiteralText(rng *rand.Rand) string {
	alphabet := []string{"a", "Z", "u", "0", "7", "/", "$", `\`, "'", `"`, "{", "\n", "\r", "\t", "\x00", "\x1f", "é", "世", "😀"}
	var sb strings.Builder
	for n := rng.IntN(12); n > 0; n-- {
		sb.WriteString(alphabet[rng.IntN(len(alphabet))])
	}
	return sb.String()
}

func TestDecodeStringLiteral_RoundTrip(t *testing.T) {
	styles := []struct {
		name   string
		d      delimiter
		encode func(string, delimiter) string
	}{
		{"single", single, encodeQuoted},
		{"double", double, encodeQuoted},
		{"triple single", tripleSingle, encodeQuoted},
		{"triple double", tripleDouble, encodeQuoted},
		{"slashy", slash, encodeSlashy},
		{"dollar slashy", dollarSlash, encodeSlashy},
	}
	samples := []string{
		"",
		"plain",
		`back\slash`,
		`\n is not a newline`,
		`\u0041 stays spelled out`,
		"tab\tand\nnewline",
		"crlf\r\nline",
		`quote " and ' and $dollar`,
		`a/b\/c`,
		`$/ and $$ and /$`,
		"trailing backslash\\",
		"trailing slash/",
		"trailing dollar$",
		"été 世 😀",
		"\x01\x1f",
		`\\\\`,
	}
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		samples = append(samples, randomLiteralText(rng))
	}

	for _, style := range styles {
		t.Run(style.name, func(t *testing.T) {
			for _, s := range samples {
				literal := style.encode(s, style.d)
				require.Equal(t, style.d, delimiterOf(literal), "%q", literal)
				assert.Equal(t, s, decodeStringLiteral(literal), "%q", literal)
			}
		})
	}
}

func TestDecodeStringLiteral_SlashyEscapes(t *testing.T) {
	tests := []struct {
		literal  string
		expected string
	}{
		{`/\//`, "/"},
		{`/\\//`, `\/`},
		{`/a\/b\/c/`, "a/b/c"},
		{`/\$/`, `\$`},
		{`$/$$/$`, "$"},
		{`$/$//$`, "/"},
		{`$/$$$//$`, "$/"},
		{`$/\//$`, `\/`},
		{`$/$x/$`, "$x"},
	}
	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeStringLiteral(tt.literal))
		})
	}
}

func TestGStringFragments(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		part     string
		end      string
		expected []string
	}{
		{"double", `"a$`, `b$`, `c"`, []string{"a", "b", "c"}},
		{"triple double", `"""a$`, "\r\nb$", `c"""`, []string{"a", "\nb", "c"}},
		{"escapes", `"\t$`, `\$$`, `\n"`, []string{"\t", "$", "\n"}},
		{"slashy", `/a\/$`, `\d$`, `c/`, []string{"a/", `\d`, "c"}},
		{"dollar slashy", `$/a$$$`, `b$`, `c/$`, []string{"a$", "b", "c"}},
		{"empty fragments", `"$`, `$`, `"`, []string{"", "", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := delimiterOf(tt.start)
			got := []string{
				clearGStringStart(tt.start, d),
				clearGStringPart(tt.part, d),
				clearGStringEnd(tt.end, d),
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseInteger(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	tests := []struct {
		text     string
		expected any
	}{
		{"0", int32(0)},
		{"42", int32(42)},
		{"-42", int32(-42)},
		{"1_000_000", int32(1000000)},
		{"0x1F", int32(31)},
		{"0b101", int32(5)},
		{"017", int32(15)},
		{"2147483648", int64(2147483648)},
		{"-2147483648", int32(-2147483648)},
		{"5L", int64(5)},
		{"5i", int32(5)},
		{"5G", big.NewInt(5)},
		{"0xFFl", int64(255)},
		{"123456789012345678901234567890", huge},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseInteger(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseInteger_Errors(t *testing.T) {
	for _, text := range []string{"3000000000i", "99999999999999999999L", "08"} {
		t.Run(text, func(t *testing.T) {
			_, err := parseInteger(text)
			assert.Error(t, err)
		})
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		text     string
		expected any
	}{
		{"1.5f", float32(1.5)},
		{"1.5d", float64(1.5)},
		{"-2.25D", float64(-2.25)},
		{"1e3d", float64(1000)},
		{"1.5", big.NewRat(3, 2)},
		{"-0.25", big.NewRat(-1, 4)},
		{"1_0.5G", big.NewRat(21, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseDecimal(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestZeroValue(t *testing.T) {
	assert.Equal(t, int32(0), zeroValue("int"))
	assert.Equal(t, int64(0), zeroValue("long"))
	assert.Equal(t, false, zeroValue("boolean"))
	assert.Equal(t, float64(0), zeroValue("double"))
	assert.Nil(t, zeroValue("String"))
}
