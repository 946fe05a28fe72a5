package debug

import (
	"fmt"
	"os"

	"github.com/signadot/xmlrev/dom"
)

// Logf writes to stderr. Snapshot arguments are rendered as indented trees.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *dom.Snapshot:
			if x == nil {
				args[i] = "<nil snapshot>"
				continue
			}
			args[i] = x.String()
		case *dom.Node:
			if x == nil {
				args[i] = "<nil node>"
				continue
			}
			args[i] = x.String()
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
