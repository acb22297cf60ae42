package runtime

import (
	"fmt"
	"io"
	"os"
)

// Main is the entry point of every generated program. It runs program and
// exits the process: status 0 on completion, status 1 after reporting an
// uncaught *Error as "<kind>: <message>" on standard error. Other panics are
// not intercepted.
func Main(program func()) {
	os.Exit(Run(program, os.Stderr))
}

// Run executes program, reports an uncaught *Error to stderr and returns the
// process exit status. Print output is flushed before anything is reported.
func Run(program func(), stderr io.Writer) int {
	defer stdout.Flush()
	err := Catch(program)
	stdout.Flush()
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	return 0
}
