package main

import (
	"fmt"
	"os"

	"github.com/peplint/peplint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
