package render

// Options controls writer formatting.
type Options struct {
	// Indent is the indentation string for nested blocks (default is four spaces).
	Indent string
}

// normalize normalizes the Options.
func (o *Options) normalize() Options {
	if o == nil {
		return Options{Indent: "    "}
	}

	out := *o
	if out.Indent == "" {
		out.Indent = "    "
	}

	return out
}
