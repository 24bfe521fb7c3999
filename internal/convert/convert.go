package convert

// Result is the uniform outcome of a conversion: either valid output
// text or the underlying parser/codec diagnostic. Facade functions
// never panic across this boundary.
type Result struct {
	Valid  bool
	Output string
	ErrMsg string
}

func success(text string) Result {
	return Result{Valid: true, Output: text}
}

func failure(msg string) Result {
	return Result{ErrMsg: msg}
}

// Format reparses text and serializes it with the given indentation.
func Format(text string, indent Indent) Result {
	v, err := Parse(text)
	if err != nil {
		return failure(err.Error())
	}
	return success(Serialize(v, indent))
}

// Minify reparses text and serializes it with no whitespace.
func Minify(text string) Result {
	v, err := Parse(text)
	if err != nil {
		return failure(err.Error())
	}
	return success(Serialize(v, IndentNone()))
}

// ToMarkdown renders JSON text as a Markdown document.
func ToMarkdown(text string) Result {
	v, err := Parse(text)
	if err != nil {
		return failure(err.Error())
	}
	return success(RenderMarkdown(v))
}

// FromMarkdown extracts JSON from fenced code blocks in a Markdown
// document. See ExtractJSON for the block and failure rules.
func FromMarkdown(markdown string) Result {
	return ExtractJSON(markdown)
}

// ToYAML converts JSON text to YAML, preserving key order.
func ToYAML(text string) Result {
	v, err := Parse(text)
	if err != nil {
		return failure(err.Error())
	}
	out, err := encodeYAML(v)
	if err != nil {
		return failure(err.Error())
	}
	return success(out)
}

// FromYAML converts YAML text to JSON with a two-space indent.
func FromYAML(text string) Result {
	v, err := decodeYAML(text)
	if err != nil {
		return failure(err.Error())
	}
	return success(Serialize(v, IndentSpaces(2)))
}

// Validate reports whether text is well-formed JSON, returning the
// parser diagnostic when it is not.
func Validate(text string) (bool, string) {
	if _, err := Parse(text); err != nil {
		return false, err.Error()
	}
	return true, ""
}
