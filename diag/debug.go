package diag

import (
	"fmt"
	"io"
	"os"
)

// Enabled gates the optional tracing calls sprinkled through the
// sampler and analyzer hot paths. Set STIM_DEBUG=1 to turn them on.
var Enabled = os.Getenv("STIM_DEBUG") == "1"

// Printf writes a trace line to w when Enabled is set, and is a no-op
// otherwise.
func Printf(w io.Writer, f string, a ...any) {
	if Enabled {
		fmt.Fprintf(w, f, a...)
	}
}
