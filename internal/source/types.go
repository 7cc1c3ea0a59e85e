package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags records how the file content was obtained and normalized.
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk (stdin, http, repl, tests).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM is set when a UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF is set when at least one \r\n was rewritten to \n.
	FileNormalizedCRLF
)

// File captures metadata and normalized content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n' in Content
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
}
