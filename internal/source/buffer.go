package source

// Buffer owns the immutable bytes of exactly one source file for the
// lifetime of a compile job. Nothing downstream of the lexer ever mutates
// it; the lexer only advances a cursor over it and the parser/AST only ever
// reference it through Position/Span values, never by holding a slice into
// it directly.
type Buffer struct {
	name string
	text string
}

// New wraps text as a named, read-only buffer. text must already be valid
// UTF-8; callers (the CLI driver, tests) are responsible for that.
func New(name string, text string) *Buffer {
	return &Buffer{name: name, text: text}
}

// Name is the filename this buffer was read from, used to stamp Position.Filename.
func (b *Buffer) Name() string { return b.name }

// Text returns the full underlying contents. The lexer uses this once, at
// construction, and never needs a second read.
func (b *Buffer) Text() string { return b.text }

// Len is the buffer's byte length.
func (b *Buffer) Len() int { return len(b.text) }
