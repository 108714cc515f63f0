package main

import (
	"context"
	"os"
	"os/signal"
	"somenotes/internal/app/deps"
	"somenotes/internal/app/services"
	"somenotes/internal/core/domain/logging"
	reconcilereminders "somenotes/internal/core/services/reconcile_reminders"
	"syscall"
	"time"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	ticker := time.NewTicker(deps.Config.ReconciliationPeriod)
	defer ticker.Stop()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic reminder reconciliation.",
		logging.Entry("periodMinutes", deps.Config.ReconciliationPeriod.Minutes()),
	)

loop:
	for {
		select {
		case <-stopCh:
			log.Info(context.Background(), "Stopping periodic reminder reconciliation.")
			break loop
		case <-ticker.C:
			log.Info(context.Background(), "Launching reminder reconciliation.")
			result, err := services.ReconcileReminders.Run(context.Background(), reconcilereminders.Input{})
			if err != nil {
				log.Error(context.Background(), "Reconciliation returned an error.", logging.Entry("err", err))
				continue
			}
			log.Info(
				context.Background(),
				"Reminder reconciliation finished.",
				logging.Entry("armed", result.Armed),
				logging.Entry("canceled", result.Canceled),
			)
		}
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
