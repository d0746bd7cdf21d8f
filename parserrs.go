package calc

import (
	"math/big"
	"strconv"
)

// UnrecognizedTokenError is an error indicating input that does not begin any
// token, or a word that is not a known function or constant. It implements
// InputError.
type UnrecognizedTokenError struct {
	// Col is the position of the start of the token.
	Col int
	// Text is the unrecognized character or word.
	Text string
}

func (err *UnrecognizedTokenError) Error() string {
	return errpos(err.Col, "unrecognized token "+strconv.Quote(err.Text))
}

func (err *UnrecognizedTokenError) Pos() int {
	return err.Col
}

// UnexpectedTokenError is an error indicating a valid token where the grammar
// does not allow it. It implements InputError.
type UnexpectedTokenError struct {
	// Col is the position of the start of the token.
	Col int
	// Want is the kind of token that was required, or TokenNone if the
	// token could not begin a term.
	Want TokenKind
	// Found is the kind of token that was found.
	Found TokenKind
	// Text is the source of the token that was found. It is empty for
	// TokenEnd.
	Text string
}

func (err *UnexpectedTokenError) Error() string {
	found := err.Found.String()
	if err.Found == TokenNumber {
		found += " " + err.Text
	}
	if err.Want == TokenNone {
		return errpos(err.Col, "unexpected "+found)
	}
	return errpos(err.Col, "expected "+err.Want.String()+", found "+found)
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Col
}

// DomainError is an error indicating an operation with no defined result,
// such as 0/0 or sin(∞), in an arithmetic that does not represent NaN. It
// unwraps to big.ErrNaN.
type DomainError struct {
	// Col is the position of the operator or function name.
	Col int
	// Op is the operation.
	Op TokenKind
	// Err is the error the arithmetic panicked with.
	Err big.ErrNaN
}

func (err *DomainError) Error() string {
	msg := "undefined result of " + err.Op.String()
	if s := err.Err.Error(); s != "" {
		msg += ": " + s
	}
	return errpos(err.Col, msg)
}

func (err *DomainError) Pos() int {
	return err.Col
}

func (err *DomainError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of characters
	// before it in the normalized expression.
	Pos() int
}

var (
	_ InputError = (*UnrecognizedTokenError)(nil)
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*DomainError)(nil)
)
