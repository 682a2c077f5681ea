// dlprotocol runs the hierarchical reasoning protocol demo.
package main

import (
	"os"

	"github.com/gzhole/dlprotocol/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
