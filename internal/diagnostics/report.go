// Package diagnostics formats allocator errors for human and CI consumption.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/quillbyte/slra/slra"
)

// Report writes a one-line, tool-style diagnostic for err to w, prefixed
// with source so the message points at the file that produced it.
func Report(w io.Writer, source string, err error) {
	ae, ok := err.(*slra.AllocError)
	if !ok {
		fmt.Fprintf(w, "%s: error: %v\n", source, err)
		return
	}
	if ae.Instr < 0 {
		fmt.Fprintf(w, "%s: error: %s: %s\n", source, ae.Kind, ae.Msg)
		return
	}
	fmt.Fprintf(w, "%s:%d: error: %s: %s\n", source, ae.Instr, ae.Kind, ae.Msg)
}
