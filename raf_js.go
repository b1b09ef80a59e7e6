package main

import (
	"syscall/js"
)

// rafScheduler calls the frame callback from requestAnimationFrame.
type rafScheduler struct {
	id      js.Value
	cb      js.Func
	running bool
}

func (s *rafScheduler) Start(fn func() bool) {
	s.Stop()
	s.running = true
	s.cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if !s.running {
			return nil
		}
		if !fn() {
			s.running = false
			s.cb.Release()
			return nil
		}
		s.id = js.Global().Call("requestAnimationFrame", s.cb)
		return nil
	})
	s.id = js.Global().Call("requestAnimationFrame", s.cb)
}

func (s *rafScheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	js.Global().Call("cancelAnimationFrame", s.id)
	s.cb.Release()
}
