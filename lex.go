package calc

import (
	"errors"
	"log/slog"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// TokenKind is the kind of a lexical token.
type TokenKind int

const (
	// TokenNone is the zero TokenKind. No token has this kind; errors use it
	// to mean that no particular kind was required.
	TokenNone TokenKind = iota
	// TokenEnd indicates the end of the input.
	TokenEnd
	// TokenNumber is a decimal literal, e.g. 12 or 1.5 or 3.
	TokenNumber
	TokenLeftParen
	TokenRightParen
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenSin
	TokenCos
	TokenExp
	TokenPi
	TokenE
)

var kindnames = [...]string{
	TokenNone:       "none",
	TokenEnd:        "end of input",
	TokenNumber:     "number",
	TokenLeftParen:  "(",
	TokenRightParen: ")",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenStar:       "*",
	TokenSlash:      "/",
	TokenSin:        "SIN",
	TokenCos:        "COS",
	TokenExp:        "EXP",
	TokenPi:         "PI",
	TokenE:          "E",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindnames[k]
}

// keywords maps each recognized word to its token. Words are matched after
// normalization, so only upper case appears here.
var keywords = map[string]TokenKind{
	"SIN": TokenSin,
	"COS": TokenCos,
	"EXP": TokenExp,
	"PI":  TokenPi,
	"E":   TokenE,
}

// tokenizer scans a normalized expression one token at a time. The current
// token is always the first one the evaluator has not yet consumed.
//
// Every token the tokenizer accepts is ASCII, so the byte offset of the
// cursor is also its character offset up to the first error.
type tokenizer struct {
	src string
	// pos is the offset of the first unscanned byte.
	pos int
	// kind is the kind of the current token, and start is its offset.
	kind  TokenKind
	start int
	// text is the source of the current token, and num is its value if it is
	// a number.
	text string
	num  float64

	log *slog.Logger
}

// advance scans the next token, replacing the current one.
func (t *tokenizer) advance() error {
	t.start = t.pos
	t.text = ""
	if t.pos >= len(t.src) {
		t.kind = TokenEnd
		t.trace()
		return nil
	}
	switch t.src[t.pos] {
	case '(':
		t.single(TokenLeftParen)
	case ')':
		t.single(TokenRightParen)
	case '+':
		t.single(TokenPlus)
	case '-':
		t.single(TokenMinus)
	case '*':
		t.single(TokenStar)
	case '/':
		t.single(TokenSlash)
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if err := t.scanNum(); err != nil {
			return err
		}
	default:
		r, _ := utf8.DecodeRuneInString(t.src[t.pos:])
		if !unicode.IsLetter(r) {
			return &UnrecognizedTokenError{Col: t.pos, Text: string(r)}
		}
		word := t.scanWord()
		k, ok := keywords[word]
		if !ok {
			return &UnrecognizedTokenError{Col: t.start, Text: word}
		}
		t.kind = k
	}
	t.trace()
	return nil
}

func (t *tokenizer) single(kind TokenKind) {
	t.text = t.src[t.pos : t.pos+1]
	t.kind = kind
	t.pos++
}

// scanNum scans digits, optionally followed by a point and more digits. A
// point with no digits after it still belongs to the number.
func (t *tokenizer) scanNum() error {
	i := digits(t.src, t.pos)
	if i < len(t.src) && t.src[i] == '.' {
		i = digits(t.src, i+1)
	}
	t.text = t.src[t.pos:i]
	f, err := strconv.ParseFloat(t.text, 64)
	// Literals too large for a float64 become infinite, but otherwise
	// ParseFloat accepts anything we scan.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return &UnrecognizedTokenError{Col: t.pos, Text: t.text}
	}
	t.num = f
	t.kind = TokenNumber
	t.pos = i
	return nil
}

func digits(s string, i int) int {
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	return i
}

// scanWord scans a run of letters and returns it.
func (t *tokenizer) scanWord() string {
	i := t.pos
	for i < len(t.src) {
		r, sz := utf8.DecodeRuneInString(t.src[i:])
		if !unicode.IsLetter(r) {
			break
		}
		i += sz
	}
	t.text = t.src[t.pos:i]
	t.pos = i
	return t.text
}

// expect checks that the current token has the given kind.
func (t *tokenizer) expect(kind TokenKind) error {
	if t.kind != kind {
		return t.unexpected(kind)
	}
	return nil
}

// unexpected creates an error for the current token.
func (t *tokenizer) unexpected(want TokenKind) error {
	return &UnexpectedTokenError{
		Col:   t.start,
		Want:  want,
		Found: t.kind,
		Text:  t.text,
	}
}

func (t *tokenizer) trace() {
	if t.log == nil {
		return
	}
	t.log.Debug("token", slog.Int("pos", t.start), slog.Any("kind", t.kind), slog.String("text", t.text))
}
