// Package main provides impactctl, the operator CLI for ImpactTrack.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
