package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotstore/cmd/dotstore"
)

func main() {
	rootCmd := dotstore.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
