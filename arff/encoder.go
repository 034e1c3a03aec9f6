package arff

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/hupe1980/arffconv/vector"
)

// DefaultComment is the comment block written at the top of every file.
const DefaultComment = "% 1. Title: SPAM/HAM data sets\n" +
	"% \n" +
	"% 2. Sources:\n" +
	"%     (a) Creator: Hao Xiong\n" +
	"%     (b) DataSource: Data sets from CS7301 Machine Learning homework 3\n" +
	"%     (c) Date: March, 2017\n" +
	"% \n"

// Option configures an Encoder.
type Option func(*options)

type options struct {
	comment string
}

// WithComment replaces DefaultComment. The text is written verbatim, so
// every line should start with "%" and end with a newline.
func WithComment(comment string) Option {
	return func(o *options) {
		o.comment = comment
	}
}

// Encoder writes one ARFF document to an io.Writer.
type Encoder struct {
	w       *bufio.Writer
	opts    options
	scratch []byte
	err     error
}

// NewEncoder returns an Encoder writing to w. Call Flush when done.
func NewEncoder(w io.Writer, optFns ...Option) *Encoder {
	opts := options{comment: DefaultComment}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Encoder{
		w:       bufio.NewWriter(w),
		opts:    opts,
		scratch: make([]byte, 0, 32),
	}
}

// WriteHeader writes the comment block, the relation and the attribute
// declarations for vocabSize features, followed by the @DATA marker.
func (e *Encoder) WriteHeader(relation string, vocabSize int) error {
	e.writeString(e.opts.comment)
	e.writeString("@RELATION ")
	e.writeString(relation)
	e.writeString("\n\n")

	for i := range vocabSize {
		e.writeString("@ATTRIBUTE w")
		e.writeInt(i)
		e.writeString(" integer\n")
	}

	e.writeString("@ATTRIBUTE class  {")
	for i, l := range vector.Labels {
		if i > 0 {
			e.writeString(",")
		}
		e.writeString(l.String())
	}
	e.writeString("}\n\n@DATA\n")

	return e.err
}

// WriteRow writes the sparse row of d.
func (e *Encoder) WriteRow(d *vector.Document) error {
	e.writeString("{")
	d.Each(func(index, count int) bool {
		e.writeInt(index)
		e.writeString(" ")
		e.writeInt(count)
		e.writeString(",")
		return e.err == nil
	})
	e.writeInt(d.Len())
	e.writeString(` "`)
	e.writeString(d.Label().String())
	e.writeString("\"}\n")

	return e.err
}

// Flush writes any buffered data to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	e.err = e.w.Flush()
	return e.err
}

// Encode writes a complete document with rows in docs order and flushes.
func (e *Encoder) Encode(relation string, vocabSize int, docs []*vector.Document) error {
	if err := e.WriteHeader(relation, vocabSize); err != nil {
		return err
	}
	for _, d := range docs {
		if err := e.WriteRow(d); err != nil {
			return err
		}
	}
	return e.Flush()
}

func (e *Encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *Encoder) writeInt(n int) {
	if e.err != nil {
		return
	}
	e.scratch = strconv.AppendInt(e.scratch[:0], int64(n), 10)
	_, e.err = e.w.Write(e.scratch)
}

// Marshal returns the whole ARFF document in memory.
func Marshal(relation string, vocabSize int, docs []*vector.Document, optFns ...Option) []byte {
	var buf bytes.Buffer
	buf.Grow(Size(relation, vocabSize, docs, optFns...))

	// writes to a bytes.Buffer cannot fail
	_ = NewEncoder(&buf, optFns...).Encode(relation, vocabSize, docs)
	return buf.Bytes()
}

// Size returns the exact length of the document Marshal would produce.
func Size(relation string, vocabSize int, docs []*vector.Document, optFns ...Option) int {
	opts := options{comment: DefaultComment}
	for _, fn := range optFns {
		fn(&opts)
	}

	n := len(opts.comment) + len("@RELATION ") + len(relation) + 2
	for i := range vocabSize {
		n += len("@ATTRIBUTE w") + digits(i) + len(" integer\n")
	}
	n += len("@ATTRIBUTE class  {") + len("}\n\n@DATA\n")
	for i, l := range vector.Labels {
		if i > 0 {
			n++
		}
		n += len(l)
	}

	for _, d := range docs {
		n += 1 + digits(d.Len()) + 2 + len(d.Label()) + 3
		d.Each(func(index, count int) bool {
			n += digits(index) + 1 + digits(count) + 1
			return true
		})
	}
	return n
}

func digits(n int) int {
	if n < 0 {
		return 1 + digits(-n)
	}
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
