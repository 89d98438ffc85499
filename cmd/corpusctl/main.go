// Command corpusctl manages the persisted movie dialogue corpus: it imports
// the CSV files into PostgreSQL, uploads a local copy to the bucket and
// publishes a new update marker so running servers reload.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("corpusctl failed")
		stop()
		os.Exit(1)
	}
}
