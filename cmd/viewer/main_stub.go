//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "viewer requires building with -tags ebiten")
	os.Exit(2)
}
