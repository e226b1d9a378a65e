package css

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
)

// ErrIllegalDimension is returned for strings which do not denote a CSS length.
var ErrIllegalDimension = errors.New("format error parsing dimension")

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0004
	dimenInitial  uint32 = 0x0008

	dimenEM    uint32 = 0x0010
	dimenEX    uint32 = 0x0020
	dimenREM   uint32 = 0x0080
	dimenPRCNT uint32 = 0x1000

	fontRelative uint32 = dimenEM | dimenEX | dimenREM
)

// DimenT is an optional CSS length. It is either unset, a keyword (auto,
// inherit, initial), an absolute dimension, or a relative value (percentage
// or font-relative). Relative magnitudes are stored as fixed-point numbers
// scaled by 65536, i.e. 50% and 0.5em are both stored as 0.5*65536 and 50*65536
// respectively.
type DimenT struct {
	d     dimen.Dimen
	flags uint32
}

// SomeDimen creates a dimension with a fixed value of x.
func SomeDimen(x dimen.Dimen) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Dimen creates an unset dimension.
func Dimen() DimenT {
	return DimenT{}
}

// Auto creates a dimension with value `auto`.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Percent creates a relative dimension of p percent.
func Percent(p float64) DimenT {
	return DimenT{d: fixed(p), flags: dimenPRCNT}
}

// EM creates a font-relative dimension of x em.
func EM(x float64) DimenT {
	return DimenT{d: fixed(x), flags: dimenEM}
}

func fixed(f float64) dimen.Dimen {
	return dimen.Dimen(math.Round(f * 65536))
}

// Unwrap returns the underlying value. For relative dimensions this is the
// fixed-point magnitude.
func (o DimenT) Unwrap() dimen.Dimen {
	return o.d
}

// IsNone returns true if o is unset.
func (o DimenT) IsNone() bool {
	return o.flags == dimenNone
}

// IsAuto returns true if o has value `auto`.
func (o DimenT) IsAuto() bool {
	return o.flags == dimenAuto
}

// IsAbsolute returns true if o is a fixed dimension.
func (o DimenT) IsAbsolute() bool {
	return o.flags == dimenAbsolute
}

// IsPercent returns true if o is a percentage value.
func (o DimenT) IsPercent() bool {
	return o.flags == dimenPRCNT
}

// IsFontRelative returns true if o depends on a font size.
func (o DimenT) IsFontRelative() bool {
	return o.flags&fontRelative > 0
}

// IsRelative returns true if o needs a reference value to be resolved.
func (o DimenT) IsRelative() bool {
	return o.IsPercent() || o.IsFontRelative()
}

// IsKeyword returns true for `inherit` and `initial`.
func (o DimenT) IsKeyword() bool {
	return o.flags == dimenInherit || o.flags == dimenInitial
}

// Resolve returns the fixed value of o. Percentages are resolved against ref.
// The second return value is false if o is unset, auto or font-relative.
func (o DimenT) Resolve(ref dimen.Dimen) (dimen.Dimen, bool) {
	switch {
	case o.IsAbsolute():
		return o.d, true
	case o.IsPercent():
		return dimen.Dimen(int64(ref) * int64(o.d) / (100 * 65536)), true
	}
	return 0, false
}

// ResolveOr returns the fixed value of o, or dflt if o cannot be resolved.
func (o DimenT) ResolveOr(ref dimen.Dimen, dflt dimen.Dimen) dimen.Dimen {
	if d, ok := o.Resolve(ref); ok {
		return d
	}
	return dflt
}

// FixFont resolves font-relative units against a font size. rem values
// resolve against root. Other dimensions are returned unchanged.
func (o DimenT) FixFont(fontSize, root dimen.Dimen) DimenT {
	switch o.flags {
	case dimenEM:
		return SomeDimen(dimen.Dimen(int64(fontSize) * int64(o.d) / 65536))
	case dimenEX:
		return SomeDimen(dimen.Dimen(int64(fontSize) * int64(o.d) / (2 * 65536)))
	case dimenREM:
		return SomeDimen(dimen.Dimen(int64(root) * int64(o.d) / 65536))
	}
	return o
}

func (o DimenT) String() string {
	switch o.flags {
	case dimenNone:
		return "DimenT.None"
	case dimenAuto:
		return "auto"
	case dimenInitial:
		return "initial"
	case dimenInherit:
		return "inherit"
	case dimenAbsolute:
		return o.d.String()
	}
	if unit, ok := relUnitMap[o.flags]; ok {
		return strconv.FormatFloat(float64(o.d)/65536, 'f', -1, 64) + unit
	}
	return fmt.Sprintf("%dsp", o.d)
}

var relUnitMap = map[uint32]string{
	dimenEM:    "em",
	dimenEX:    "ex",
	dimenREM:   "rem",
	dimenPRCNT: "%",
}

var absUnitMap = map[string]float64{
	"px": float64(dimen.PX),
	"pt": float64(dimen.PT),
	"bp": float64(dimen.BP),
	"mm": float64(dimen.MM),
	"cm": float64(dimen.CM),
	"in": float64(dimen.IN),
	"pc": 12 * float64(dimen.PT),
	"sp": 1,
}

// ParseDimen parses a CSS length, percentage or one of the keywords `auto`,
// `inherit` and `initial`. A bare 0 is accepted as zero length.
func ParseDimen(s string) (DimenT, error) {
	toks := Tokenize(s)
	if len(toks) != 1 {
		return Dimen(), ErrIllegalDimension
	}
	return dimenFromToken(toks[0])
}

func dimenFromToken(tok Token) (DimenT, error) {
	switch tok.Type {
	case tcss.IdentToken:
		switch strings.ToLower(tok.Data) {
		case "auto":
			return Auto(), nil
		case "inherit":
			return DimenT{flags: dimenInherit}, nil
		case "initial":
			return DimenT{flags: dimenInitial}, nil
		}
	case tcss.NumberToken:
		n, err := strconv.ParseFloat(tok.Data, 64)
		if err != nil || n != 0 {
			return Dimen(), ErrIllegalDimension
		}
		return SomeDimen(0), nil
	case tcss.PercentageToken:
		n, err := strconv.ParseFloat(strings.TrimSuffix(tok.Data, "%"), 64)
		if err != nil {
			return Dimen(), ErrIllegalDimension
		}
		return Percent(n), nil
	case tcss.DimensionToken:
		num, unit := splitDimension(tok.Data)
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Dimen(), ErrIllegalDimension
		}
		unit = strings.ToLower(unit)
		if scale, ok := absUnitMap[unit]; ok {
			return SomeDimen(dimen.Dimen(math.Round(n * scale))), nil
		}
		switch unit {
		case "em":
			return EM(n), nil
		case "ex":
			return DimenT{d: fixed(n), flags: dimenEX}, nil
		case "rem":
			return DimenT{d: fixed(n), flags: dimenREM}, nil
		}
	}
	return Dimen(), ErrIllegalDimension
}

// splitDimension splits a dimension token like "12.5px" into number and unit.
func splitDimension(s string) (string, string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			i--
			continue
		}
		break
	}
	return s[:i], s[i:]
}

// MaxDimen returns the greater of two fixed dimensions. An unset or
// non-absolute dimension loses against a fixed one.
func MaxDimen(d1, d2 DimenT) DimenT {
	if !d1.IsAbsolute() {
		return d2
	}
	if !d2.IsAbsolute() {
		return d1
	}
	return SomeDimen(dimen.Max(d1.d, d2.d))
}

// MinDimen returns the smaller of two fixed dimensions. An unset or
// non-absolute dimension loses against a fixed one.
func MinDimen(d1, d2 DimenT) DimenT {
	if !d1.IsAbsolute() {
		return d2
	}
	if !d2.IsAbsolute() {
		return d1
	}
	return SomeDimen(dimen.Min(d1.d, d2.d))
}

// --- Tokens ----------------------------------------------------------------

// Token is a CSS value token.
type Token struct {
	Type tcss.TokenType
	Data string
	Args []Token // arguments of function tokens, without commas
}

// Tokenize splits a property value into tokens, dropping whitespace and
// comments. Function tokens collect their arguments up to the matching
// closing parenthesis.
func Tokenize(s string) []Token {
	l := tcss.NewLexer(parse.NewInputString(s))
	toks, _ := collect(l, false)
	return toks
}

func collect(l *tcss.Lexer, nested bool) ([]Token, bool) {
	var toks []Token
	for {
		tt, data := l.Next()
		switch tt {
		case tcss.ErrorToken:
			return toks, false
		case tcss.WhitespaceToken, tcss.CommentToken:
			continue
		case tcss.CommaToken:
			if nested {
				continue
			}
		case tcss.RightParenthesisToken:
			if nested {
				return toks, true
			}
		case tcss.FunctionToken:
			name := strings.TrimSuffix(string(data), "(")
			args, _ := collect(l, true)
			toks = append(toks, Token{Type: tt, Data: strings.ToLower(name), Args: args})
			continue
		}
		toks = append(toks, Token{Type: tt, Data: string(data)})
	}
}

// String returns the CSS text of a token.
func (tok Token) String() string {
	if tok.Type != tcss.FunctionToken {
		return tok.Data
	}
	var b strings.Builder
	b.WriteString(tok.Data)
	b.WriteByte('(')
	for i, a := range tok.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// SplitValues splits a (shorthand) value into its whitespace-separated
// components, keeping function calls like rgb(…) intact.
func SplitValues(s string) []string {
	toks := Tokenize(s)
	vals := make([]string, len(toks))
	for i, tok := range toks {
		vals[i] = tok.String()
	}
	return vals
}
