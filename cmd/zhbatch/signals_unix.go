//go:build unix

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// watchSignals maps SIGINT and SIGTERM to cancel, SIGUSR1 to pause, and
// SIGUSR2 to resume until stop is called.
func watchSignals(target taskControl) (stop func()) {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1, syscall.SIGUSR2)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-ch:
				switch sig {
				case syscall.SIGUSR1:
					target.Pause()
				case syscall.SIGUSR2:
					target.Resume()
				default:
					target.Cancel()
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
