package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	// ShowSource prints the offending source line with a caret underline.
	ShowSource bool
}
