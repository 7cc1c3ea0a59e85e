package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnsupportedChar    Code = 1001
	LexUnterminatedString Code = 1002
	LexUnexpectedEnd      Code = 1003
	LexTokenTooLong       Code = 1004

	// Раскладка (layout)
	LayInfo              Code = 2000
	LayUnbalancedBraces  Code = 2001
	LayUnbalancedParens  Code = 2002
	LayIdempotenceFailed Code = 2003
	LayTokensChanged     Code = 2004

	// Рендеринг
	RenInfo             Code = 3000
	RenDuplicateGroupID Code = 3001
	RenUnsupportedToken Code = 3002

	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	CfgInfo          Code = 5000
	CfgInvalidValue  Code = 5001
	CfgUnknownFormat Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnsupportedChar:    "Unsupported character",
	LexUnterminatedString: "Unterminated string literal",
	LexUnexpectedEnd:      "Unexpected end of input",
	LexTokenTooLong:       "Token too long",
	LayInfo:               "Layout information",
	LayUnbalancedBraces:   "Unbalanced braces",
	LayUnbalancedParens:   "Unbalanced parentheses",
	LayIdempotenceFailed:  "Formatting is not idempotent",
	LayTokensChanged:      "Formatting changed non-whitespace tokens",
	RenInfo:               "Render information",
	RenDuplicateGroupID:   "Duplicate document group id",
	RenUnsupportedToken:   "Unsupported token reached the builder",
	IOLoadFileError:       "I/O load file error",
	IOWriteFileError:      "I/O write file error",
	CfgInfo:               "Configuration information",
	CfgInvalidValue:       "Invalid configuration value",
	CfgUnknownFormat:      "Unknown configuration file format",
	ObsInfo:               "Observability information",
	ObsTimings:            "Pipeline timings",
}

// ID returns the stable short identifier, e.g. "LEX1002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LAY%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("REN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
