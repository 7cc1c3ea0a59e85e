package format

import (
	"errors"

	"xfmt/internal/diag"
	"xfmt/internal/doc"
	"xfmt/internal/layout"
	"xfmt/internal/lexer"
	"xfmt/internal/source"
)

// Diagnose converts a pipeline error into a diagnostic anchored in sf.
// Errors without a span point at the start of the file.
func Diagnose(err error, sf *source.File) diag.Diagnostic {
	var at source.Span
	if sf != nil {
		at = source.At(sf.ID, 0)
	}

	var (
		lexErr   *lexer.Error
		layErr   *layout.LayoutError
		checkErr *CheckError
	)
	switch {
	case errors.As(err, &lexErr):
		return diag.NewError(lexErr.Code(), lexErr.Span, lexErr.Error())
	case errors.As(err, &layErr):
		return diag.NewError(layErr.Code(), layErr.Span, layErr.Error())
	case errors.As(err, &checkErr):
		return diag.NewError(checkErr.Code(), checkErr.Span, checkErr.Msg)
	case errors.Is(err, doc.ErrDuplicateGroupID), errors.Is(err, doc.ErrUnknownNode):
		return diag.NewError(diag.RenDuplicateGroupID, at, err.Error())
	case errors.Is(err, ErrUnsupportedToken):
		return diag.NewError(diag.RenUnsupportedToken, at, err.Error())
	default:
		return diag.NewError(diag.UnknownCode, at, err.Error())
	}
}
