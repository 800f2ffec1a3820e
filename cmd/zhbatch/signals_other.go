//go:build !unix

package main

import (
	"os"
	"os/signal"
)

// watchSignals cancels the task on interrupt until stop is called.
func watchSignals(target taskControl) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	done := make(chan struct{})
	go func() {
		select {
		case <-ch:
			target.Cancel()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
