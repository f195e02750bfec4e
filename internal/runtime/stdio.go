package runtime

import (
	"bufio"
	"fmt"
	"io"
)

// Stream wraps a writer as the stream object spec.md §8's
// `Stdio stdout print: 'hi'; nl` scenario sends print:/nl/show: to.
type Stream struct {
	w *bufio.Writer
}

func NewStream(w io.Writer) *Stream {
	return &Stream{w: bufio.NewWriter(w)}
}

func (s *Stream) Method(selector string) (func(args ...Value) (Value, error), bool) {
	switch selector {
	case "print:", "show:":
		return func(args ...Value) (Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("runtime: #%s expects one argument", selector)
			}
			fmt.Fprint(s.w, formatValue(args[0]))
			return s, s.w.Flush()
		}, true
	case "nl":
		return func(args ...Value) (Value, error) {
			fmt.Fprint(s.w, "\n")
			return s, s.w.Flush()
		}, true
	}
	return nil, false
}

func (s *Stream) String() string { return "a Stream" }

func formatValue(v Value) string {
	switch x := v.(type) {
	case string:
		return x
	case *Symbol:
		return x.Name
	case nil:
		return "nil"
	default:
		return fmt.Sprint(x)
	}
}

// SystemObject backs the top-level `Stdio` binding. The only selector it
// understands is `stdout`, which answers the process's standard output
// stream.
type SystemObject struct {
	stdout *Stream
}

func NewStdio(stdout io.Writer) *SystemObject {
	return &SystemObject{stdout: NewStream(stdout)}
}

func (s *SystemObject) Method(selector string) (func(args ...Value) (Value, error), bool) {
	if selector != "stdout" {
		return nil, false
	}
	return func(args ...Value) (Value, error) { return s.stdout, nil }, true
}

func (s *SystemObject) String() string { return "Stdio" }
