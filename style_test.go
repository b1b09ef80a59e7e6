package main

import (
	"strings"
	"testing"
)

func TestCSSText(t *testing.T) {
	testCases := map[string]struct {
		style    map[string]string
		expected string
	}{
		"Empty": {
			style:    map[string]string{},
			expected: "",
		},
		"Sorted": {
			style:    map[string]string{"z-index": "-1", "position": "fixed"},
			expected: "position: fixed; z-index: -1;",
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if s := cssText(tt.style); s != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, s)
			}
		})
	}
}

func TestCanvasStyle(t *testing.T) {
	s := cssText(canvasStyle)
	for _, expected := range []string{
		"position: fixed;",
		"z-index: -1;",
		"pointer-events: none;",
		"width: 100vw;",
		"height: 100vh;",
	} {
		if !strings.Contains(s, expected) {
			t.Errorf("Expected %q in %q", expected, s)
		}
	}
}
