package main

import (
	"sort"
	"strings"
)

const canvasID = "starfield"

// Places the canvas behind every other element without taking input.
var canvasStyle = map[string]string{
	"position":       "fixed",
	"top":            "0",
	"left":           "0",
	"width":          "100vw",
	"height":         "100vh",
	"z-index":        "-1",
	"pointer-events": "none",
	"background":     "#000",
}

// Static background shown when the GPU path cannot start.
const fallbackBackground = "radial-gradient(ellipse at center, #1b2735 0%, #090a0f 100%)"

func cssText(style map[string]string) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(style[k])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
