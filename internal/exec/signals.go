package exec

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// forwardedSignals are relayed from the parent to a running child so that a
// deploy pipeline stopping storewire also stops the install or server.
var forwardedSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}

// ForwardSignals relays forwardedSignals to process until the returned stop
// function is called or ctx is done. stop must be called once the child has
// exited.
func ForwardSignals(ctx context.Context, process *os.Process) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, forwardedSignals...)

	done := make(chan struct{})

	go func() {
		for {
			select {
			case sig := <-sigs:
				_ = process.Signal(sig)
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
