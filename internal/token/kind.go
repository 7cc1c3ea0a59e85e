package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero value; a successful scan never emits it.
	Invalid Kind = iota
	// EOF marks the end of the source input in the streaming lexer.
	EOF

	// NewLine is a layout-owned line break.
	NewLine
	// Space is a layout-owned single space.
	Space
	// Tab is a layout-owned indentation unit.
	Tab

	Comma       // ,
	Semicolon   // ;
	OpenBrace   // {
	ClosedBrace // }
	OpenParen   // (
	ClosedParen // )

	// Operator is one of + - * = : and carries the character in Text.
	Operator
	// Literal is a word: a leading non-structural rune followed by letters, digits or '_'.
	Literal
	// String is a quoted string literal; Text includes both quotes.
	String
	// Keyword is a literal spelling reclassified by a KeywordTable.
	Keyword
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	NewLine:     "NewLine",
	Space:       "Space",
	Tab:         "Tab",
	Comma:       "Comma",
	Semicolon:   "Semicolon",
	OpenBrace:   "OpenBrace",
	ClosedBrace: "ClosedBrace",
	OpenParen:   "OpenParen",
	ClosedParen: "ClosedParen",
	Operator:    "Operator",
	Literal:     "Literal",
	String:      "String",
	Keyword:     "Keyword",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsWhitespace reports whether k is a layout-owned whitespace kind.
func (k Kind) IsWhitespace() bool {
	return k == NewLine || k == Space || k == Tab
}

// IsPunct reports whether k is a single-character structural token.
func (k Kind) IsPunct() bool {
	switch k {
	case Comma, Semicolon, OpenBrace, ClosedBrace, OpenParen, ClosedParen:
		return true
	default:
		return false
	}
}

// IsWord reports whether k carries a source payload that layout treats as an atom.
func (k Kind) IsWord() bool {
	switch k {
	case Operator, Literal, String, Keyword:
		return true
	default:
		return false
	}
}

// PunctText returns the fixed spelling of a structural token.
func PunctText(k Kind) (string, bool) {
	switch k {
	case Comma:
		return ",", true
	case Semicolon:
		return ";", true
	case OpenBrace:
		return "{", true
	case ClosedBrace:
		return "}", true
	case OpenParen:
		return "(", true
	case ClosedParen:
		return ")", true
	default:
		return "", false
	}
}

// PunctKind maps a structural byte to its kind.
func PunctKind(b byte) (Kind, bool) {
	switch b {
	case ',':
		return Comma, true
	case ';':
		return Semicolon, true
	case '{':
		return OpenBrace, true
	case '}':
		return ClosedBrace, true
	case '(':
		return OpenParen, true
	case ')':
		return ClosedParen, true
	default:
		return Invalid, false
	}
}

// IsOperatorByte reports whether b is one of the single-character operators.
func IsOperatorByte(b byte) bool {
	switch b {
	case '+', '-', '*', '=', ':':
		return true
	default:
		return false
	}
}
