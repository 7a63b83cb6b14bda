// lifedash - a command-line client for the Life Analytics backend
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/manav03panchal/lifedash/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if err := cmd.Execute(ctx); err != nil {
		stop()
		cmd.Die(err)
	}
	stop()
}
