// Package main provides the multiway CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("multiway %s\n", version)
		return
	}

	fmt.Println("multiway - Tensor Preprocessing for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("See examples/fluorescence for a runnable preprocessing demo.")
}
