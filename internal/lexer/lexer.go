package lexer

import (
	"strconv"
	"unicode"

	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/position"
)

const eof rune = -1

// MaxMagnitude is the largest integer literal the lexer accepts: the
// magnitude of math.MinInt64.
const MaxMagnitude uint64 = 1 << 63

// Lexer turns script text into tokens, one call to NextToken at a time.
type Lexer struct {
	input        []rune
	position     int  // index of ch in input
	readPosition int  // index of the next rune to read
	ch           rune // current rune under examination, eof past the end
	line         int  // 1-based line of ch
	column       int  // 1-based column of ch
	filename     string
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with filename for error reporting
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:    []rune(input),
		line:     1,
		filename: filename,
	}
	l.readChar()
	return l
}

// Line returns the line the lexer is currently on.
func (l *Lexer) Line() int { return l.line }

// readChar advances to the next rune. The line counter moves when the
// cursor steps past a newline, so newlines inside comments and string
// literals are counted too.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = eof
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next rune without advancing
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	return l.input[l.readPosition]
}

func (l *Lexer) currentPosition() position.Position {
	return position.Position{Filename: l.filename, Line: l.line, Column: l.column}
}

// skipTrivia skips whitespace and `--` line comments. A single '-' is left
// alone so it can become a minus token.
func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch != eof && unicode.IsSpace(l.ch):
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			for l.ch != '\n' && l.ch != eof {
				l.readChar()
			}
		default:
			return
		}
	}
}

// readString reads a double-quoted literal. There are no escapes; a missing
// closing quote ends the literal at end of input.
func (l *Lexer) readString() string {
	l.readChar() // opening quote
	start := l.position
	for l.ch != '"' && l.ch != eof {
		l.readChar()
	}
	literal := string(l.input[start:l.position])
	if l.ch == '"' {
		l.readChar()
	}
	return literal
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

func isLetter(ch rune) bool {
	return ch != eof && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

var singleCharTokens = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMul,
	'/': TokenDiv,
	'>': TokenGt,
	'<': TokenLt,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	',': TokenComma,
	'.': TokenDot,
}

// NextToken scans the input and returns the next token. Errors are fatal:
// the lexer does not resynchronise after an unexpected character.
func (l *Lexer) NextToken() (Token, error) {
	l.skipTrivia()
	pos := l.currentPosition()

	switch {
	case l.ch == eof:
		return Token{Type: TokenEOF, Pos: pos}, nil
	case l.ch == '"':
		return Token{Type: TokenString, Literal: l.readString(), Pos: pos}, nil
	case isLetter(l.ch) || l.ch == '_':
		ident := l.readIdentifier()
		return Token{Type: lookupIdent(ident), Literal: ident, Pos: pos}, nil
	case isDigit(l.ch):
		digits := l.readNumber()
		value, err := strconv.ParseUint(digits, 10, 64)
		if err != nil || value > MaxMagnitude {
			return Token{}, errors.General(errors.PhaseParse, pos.Line,
				"integer literal %s does not fit in 64 bits", digits)
		}
		return Token{Type: TokenInteger, Literal: digits, Value: value, Pos: pos}, nil
	case l.ch == '=':
		if l.peekChar() != '=' {
			return Token{}, errors.UnexpectedChar(l.ch, pos.Line)
		}
		l.readChar()
		l.readChar()
		return Token{Type: TokenEq, Literal: "==", Pos: pos}, nil
	}

	tt, ok := singleCharTokens[l.ch]
	if !ok {
		return Token{}, errors.UnexpectedChar(l.ch, pos.Line)
	}
	tok := Token{Type: tt, Literal: string(l.ch), Pos: pos}
	l.readChar()
	return tok, nil
}

// Tokenize lexes the whole input, including the trailing EOF token.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}
