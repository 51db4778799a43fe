// iotracer - File I/O Timeline Visualizer
//
// iotracer parses strace output and renders a timeline of which files
// a process opened, read, and wrote, and for how long.
package main

import (
	"os"

	"github.com/talfridmen/iotracer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
