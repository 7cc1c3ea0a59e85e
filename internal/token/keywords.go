package token

// KeywordTable reclassifies specific literal spellings as Keyword tokens.
// The language currently defines no reserved words, so the zero table is empty.
// Keywords are case-sensitive.
type KeywordTable map[string]struct{}

// NewKeywordTable builds a table from the given spellings.
func NewKeywordTable(words ...string) KeywordTable {
	kt := make(KeywordTable, len(words))
	for _, w := range words {
		if w != "" {
			kt[w] = struct{}{}
		}
	}
	return kt
}

// LookupKeyword returns Keyword and true when ident is in the table.
func (kt KeywordTable) LookupKeyword(ident string) (Kind, bool) {
	if _, ok := kt[ident]; ok {
		return Keyword, true
	}
	return Literal, false
}
