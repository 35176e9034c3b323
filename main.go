// main is the entry point for the gitshare CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/gitshare/cmd"
	"github.com/huangsam/gitshare/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Close persistence connections before deciding the exit code.
	iocache.CloseStores()

	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
