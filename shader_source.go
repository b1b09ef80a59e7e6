package main

const (
	uModelMatrix      = "uModelMatrix"
	uViewMatrix       = "uViewMatrix"
	uProjectionMatrix = "uProjectionMatrix"
	uPointSize        = "uPointSize"

	aVertexPosition = 0
)

const vsSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	uniform mat4 uModelMatrix;
	uniform mat4 uViewMatrix;
	uniform mat4 uProjectionMatrix;
	uniform float uPointSize;

	void main(void) {
		gl_Position = uProjectionMatrix * uViewMatrix * uModelMatrix * aVertexPosition;
		gl_PointSize = uPointSize;
	}
`

const fsSource = `#version 300 es
	precision mediump float;
	out lowp vec4 outColor;

	void main(void) {
		// Round point sprite
		if (length(gl_PointCoord - vec2(0.5)) > 0.5) {
			discard;
		}
		outColor = vec4(1.0, 1.0, 1.0, 1.0);
	}
`
