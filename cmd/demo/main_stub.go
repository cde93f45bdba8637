//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of missile-demo requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/demo` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "For a headless run use `go run ./cmd/replay -script <file>`.")
	os.Exit(2)
}
