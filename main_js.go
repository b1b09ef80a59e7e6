package main

import (
	"bytes"
	"errors"
	"math/rand"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/seqsense/starfield/starfield"
)

var errNotMounted = errors.New("star field is not mounted")

func main() {
	doc := js.Global().Get("document")
	canvas := backgroundCanvas(doc)
	data := dataset(canvas)

	_, debug := data[dataDebug]
	logger := newLogger(debug)
	defer logger.Sync()

	opts, err := loadOptions(data)
	if err != nil {
		logger.Error("invalid options", zap.Error(err))
		canvas.Get("style").Set("background", fallbackBackground)
		return
	}

	hostOpts := []starfield.HostOption{starfield.WithLogger(logger)}
	if seed, err := seedFromDataset(data); err != nil {
		logger.Warn("ignoring seed", zap.Error(err))
	} else if seed != 0 {
		hostOpts = append(hostOpts, starfield.WithRand(rand.New(rand.NewSource(seed))))
	}

	b := newWebGLBackend(canvas, opts.PointSize, logger)
	h := starfield.NewHost(b, opts, hostOpts...)

	js.Global().Set("starfield", map[string]interface{}{
		"mount": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			if err := h.Mount(); err != nil {
				return errorToJS(err)
			}
			return nil
		}),
		"unmount": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			if err := h.Unmount(); err != nil {
				return errorToJS(err)
			}
			return nil
		}),
		"state": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			return h.State().String()
		}),
		"exportPCD": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			cloud := h.Cloud()
			if cloud == nil {
				return errorToJS(errNotMounted)
			}
			blob, err := exportPCD(cloud)
			if err != nil {
				return errorToJS(err)
			}
			return blob
		}),
	})

	if err := h.Mount(); err != nil {
		logger.Error("mount failed", zap.Error(err))
	}
	select {}
}

// backgroundCanvas returns the star field canvas, creating it as the first
// child of body if the page has none.
func backgroundCanvas(doc js.Value) js.Value {
	canvas := doc.Call("getElementById", canvasID)
	if canvas.IsNull() {
		canvas = doc.Call("createElement", "canvas")
		canvas.Set("id", canvasID)
		body := doc.Get("body")
		body.Call("insertBefore", canvas, body.Get("firstChild"))
	}
	canvas.Get("style").Set("cssText", cssText(canvasStyle))
	canvas.Call("setAttribute", "aria-hidden", "true")
	return canvas
}

func dataset(canvas js.Value) map[string]string {
	ds := canvas.Get("dataset")
	data := make(map[string]string)
	for _, k := range datasetKeys {
		if v := ds.Get(k); !v.IsUndefined() {
			data[k] = v.String()
		}
	}
	return data
}

func loadOptions(data map[string]string) (starfield.Options, error) {
	opts := starfield.DefaultOptions()
	if path, ok := data[dataConfig]; ok {
		b, err := fetchGet(path)
		if err != nil {
			return starfield.Options{}, err
		}
		if opts, err = starfield.LoadOptions(bytes.NewReader(b)); err != nil {
			return starfield.Options{}, err
		}
	}
	if err := applyDataset(&opts, data); err != nil {
		return starfield.Options{}, err
	}
	return opts, nil
}
