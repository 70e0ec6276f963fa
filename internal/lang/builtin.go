package lang

// Builtin returns the languages bundled with arbor. User configuration
// extends or overrides this set.
func Builtin() []*Language {
	return []*Language{
		{
			Name:       "json",
			Extensions: []string{"json"},
			Grammar: Grammar{
				Repository: "https://github.com/tree-sitter/tree-sitter-json",
				Symbol:     "tree_sitter_json",
			},
			QueryFile: "json.scm",
		},
		{
			Name:       "toml",
			Extensions: []string{"toml"},
			Grammar: Grammar{
				Repository: "https://github.com/tree-sitter/tree-sitter-toml",
				Symbol:     "tree_sitter_toml",
			},
			QueryFile: "toml.scm",
		},
		{
			Name:       "css",
			Extensions: []string{"css"},
			Grammar: Grammar{
				Repository: "https://github.com/tree-sitter/tree-sitter-css",
				Symbol:     "tree_sitter_css",
			},
			QueryFile: "css.scm",
		},
	}
}
