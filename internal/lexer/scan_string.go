package lexer

import (
	"xfmt/internal/token"
)

// scanString читает "..." целиком, включая обе кавычки.
// '\' экранирует следующий байт; перевод строки внутри строки допустим.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '"' {
			return lx.finishWord(token.String, start)
		}
		if b == '\\' {
			if lx.cursor.EOF() {
				return lx.fail(ErrUnexpectedEnd, lx.cursor.SpanFrom(start), "input ends inside an escape sequence")
			}
			lx.cursor.Bump()
		}
	}
	// EOF без закрывающей кавычки
	return lx.fail(ErrUnterminatedString, lx.cursor.SpanFrom(start), "missing closing '\"'")
}
