package grammar

import (
	"plugin"

	"arbor/internal/engine"
	"arbor/internal/errs"
)

// Load opens a built parser library and resolves its parser symbol.
// Any failure to open the library, find the symbol or use it as a
// parser is a parser-loading error.
func Load(artifact, symbol string) (engine.Parser, error) {
	lib, err := plugin.Open(artifact)
	if err != nil {
		return nil, &errs.ParserLoading{Cause: err}
	}
	sym, err := lib.Lookup(symbol)
	if err != nil {
		return nil, &errs.ParserLoading{Cause: err}
	}
	parser, ok := sym.(engine.Parser)
	if !ok {
		return nil, &errs.ParserLoading{
			Cause: &symbolTypeError{artifact: artifact, symbol: symbol},
		}
	}
	return parser, nil
}

type symbolTypeError struct {
	artifact string
	symbol   string
}

func (e *symbolTypeError) Error() string {
	return "symbol " + e.symbol + " in " + e.artifact + " is not a parser"
}
