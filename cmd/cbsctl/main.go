package main

import (
	"fmt"
	"os"

	"github.com/thebagchi/go-cbs/cmd/cbsctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
