// Command kmap manages a knowledge map stored in SQLite.
package main

import (
	"os"

	"github.com/roach88/kmap/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
