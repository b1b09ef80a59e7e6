//go:build !js

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "build with GOOS=js GOARCH=wasm for the browser, or use ./cmd/starfield")
	os.Exit(1)
}
