package main

import (
	webgl "github.com/seqsense/webgl-go"
	"go.uber.org/zap"
)

func showDebugInfo(gl *webgl.WebGL, logger *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("failed to get debug info")
		}
	}()

	ri, ok := gl.GetExtension("WEBGL_debug_renderer_info")
	if !ok {
		logger.Debug("GPU info hidden by the browser privacy setting")
		return
	}
	logger.Debug("GPU",
		zap.String("vendor", gl.GetParameter(ri.Get("UNMASKED_VENDOR_WEBGL").Int()).String()),
		zap.String("renderer", gl.GetParameter(ri.Get("UNMASKED_RENDERER_WEBGL").Int()).String()),
		zap.Int("maxPointSize", gl.GetParameter(gl.JS().Get("ALIASED_POINT_SIZE_RANGE").Int()).Index(1).Int()),
	)
}
