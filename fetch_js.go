package main

import (
	"errors"
	"fmt"
	"syscall/js"
)

// fetchGet downloads path relative to the page and blocks until done.
// It must not be called from a JS callback.
func fetchGet(path string) ([]byte, error) {
	var b []byte
	var errored bool
	chErr := make(chan error, 1)
	var funcs []js.Func
	fn := func(f func(args []js.Value) interface{}) js.Func {
		jf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			return f(args)
		})
		funcs = append(funcs, jf)
		return jf
	}
	defer func() {
		for _, f := range funcs {
			f.Release()
		}
	}()

	js.Global().Call("fetch", path, map[string]interface{}{
		"credentials": "same-origin",
	}).Call("then",
		fn(func(args []js.Value) interface{} {
			if !args[0].Get("ok").Bool() {
				chErr <- fmt.Errorf("failed to fetch %s: %d %s",
					path, args[0].Get("status").Int(), args[0].Get("statusText").String())
				errored = true
				return nil
			}
			return args[0].Call("arrayBuffer")
		}),
		fn(func(args []js.Value) interface{} {
			chErr <- fmt.Errorf("failed to fetch %s", path)
			errored = true
			return nil
		}),
	).Call("then",
		fn(func(args []js.Value) interface{} {
			if errored {
				return nil
			}
			array := js.Global().Get("Uint8Array").New(args[0])
			b = make([]byte, array.Get("byteLength").Int())
			js.CopyBytesToGo(b, array)
			chErr <- nil
			return nil
		}),
		fn(func(args []js.Value) interface{} {
			chErr <- errors.New("failed to handle received data")
			return nil
		}),
	)

	if err := <-chErr; err != nil {
		return nil, err
	}
	return b, nil
}
