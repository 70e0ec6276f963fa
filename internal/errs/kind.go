package errs

// Kind identifies the top-level variant of an Error.
type Kind uint8

const (
	KindFormatting Kind = iota
	KindIdempotence
	KindInternal
	KindParsing
	KindQuery
	KindLanguageDetection
	KindReading
	KindWriting
	KindGit
	KindParserLoading
	KindParserCompilation
)

func (k Kind) String() string {
	switch k {
	case KindFormatting:
		return "formatting"
	case KindIdempotence:
		return "idempotence"
	case KindInternal:
		return "internal"
	case KindParsing:
		return "parsing"
	case KindQuery:
		return "query"
	case KindLanguageDetection:
		return "language-detection"
	case KindReading:
		return "reading"
	case KindWriting:
		return "writing"
	case KindGit:
		return "git"
	case KindParserLoading:
		return "parser-loading"
	case KindParserCompilation:
		return "parser-compilation"
	}
	return "unknown"
}

// IsBug reports whether the kind indicates a defect in arbor itself
// rather than a user-correctable condition. With the bundled query
// files, Formatting, Idempotence and Query failures should not happen.
func (k Kind) IsBug() bool {
	switch k {
	case KindFormatting, KindIdempotence, KindInternal, KindQuery:
		return true
	}
	return false
}
