package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seqsense/starfield/internal/term"
	"github.com/seqsense/starfield/starfield"
)

var termFPS int

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Render the star field in the terminal",
	Long:  `Draws the star field with depth shaded characters. Press q, Esc or Ctrl-C to quit.`,
	Args:  cobra.NoArgs,
	RunE:  runTerm,
}

func init() {
	termCmd.Flags().IntVar(&termFPS, "fps", 30, "Frames per second")
}

func runTerm(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	b := term.New(termFPS, opts.Camera.Far)
	h := starfield.NewHost(b, opts, hostOptions()...)
	if err := h.Mount(); err != nil {
		return err
	}
	defer func() {
		if err := h.Unmount(); err != nil {
			logger.Warn("unmount failed", zap.Error(err))
		}
	}()

	screen := b.Screen()
	stop := interruptOnSignal(screen, syscall.SIGTERM)
	defer stop()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if b.HandleEvent(ev) {
			return nil
		}
		if e, ok := ev.(*tcell.EventError); ok {
			return fmt.Errorf("%w: %v", starfield.ErrSurfaceLost, e)
		}
	}
}

// interruptOnSignal posts an interrupt event to screen when one of sigs
// arrives. The returned stop function unregisters the signals and waits
// for the watcher goroutine to exit.
func interruptOnSignal(screen tcell.Screen, sigs ...os.Signal) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, sigs...)
	go func() {
		defer close(done)
		if _, ok := <-sigCh; ok {
			logger.Info("received shutdown signal")
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(sigCh)
		<-done
	}
}
