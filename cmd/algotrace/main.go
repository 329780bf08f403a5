// Command algotrace records algorithm traces and plays them back in the
// terminal.
package main

import (
	"os"
)

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	a.shutdown()
	if err != nil {
		os.Exit(1)
	}
}
