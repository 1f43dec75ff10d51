package crashlight

// Frame is one symbolicated entry of a captured call stack. Zero values
// mean the unwinder could not resolve that field.
type Frame struct {
	Path string
	Line int
	Func string
}

// PanicInfo is what the fault boundary hands to a Handler: the value
// passed to panic and, when known, the location of the failing
// statement. It lives for the duration of one report.
type PanicInfo struct {
	Value any
	Path  string
	Line  int
}

const nonStringPayload = "<non string panic payload>"

// Message renders the panic value. Anything that is not a plain string
// gets a fixed placeholder rather than a best-effort formatting, so the
// report never depends on arbitrary payload types behaving.
func (p PanicInfo) Message() string {
	if s, ok := p.Value.(string); ok {
		return s
	}
	return nonStringPayload
}

// HasLocation reports whether the failing statement was located.
func (p PanicInfo) HasLocation() bool {
	return p.Path != ""
}
