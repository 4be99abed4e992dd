package slra

import "fmt"

// traceEnabled gates verbose stage-by-stage tracing at compile time. It must
// stay false by default and only be flipped while debugging a specific
// allocation.
const traceEnabled = false

// Trace additionally gates tracing at runtime, for front ends (like cmd/slra)
// that want a --trace flag without recompiling the library with
// traceEnabled flipped.
var Trace = false

func tracef(format string, args ...any) {
	if traceEnabled || Trace {
		fmt.Printf(format, args...)
	}
}
