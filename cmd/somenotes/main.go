package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"somenotes/internal/app"
	"somenotes/internal/app/deps"
	"somenotes/internal/app/services"
	dl "somenotes/internal/core/domain/logging"
	reconcilereminders "somenotes/internal/core/services/reconcile_reminders"
	firedwake "somenotes/internal/rabbitmq/consumers/fired_wake"
	"syscall"
	"time"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	forwardCtx, stopForwarding := context.WithCancel(context.Background())
	defer stopForwarding()
	app.StartSnapshotForwarding(forwardCtx, deps)

	// Re-arm reminders that were scheduled before the last shutdown.
	_, err := services.ReconcileReminders.Run(context.Background(), reconcilereminders.Input{})
	if err != nil {
		deps.Logger.Error(context.Background(), "Startup reconciliation failed.", dl.Entry("err", err))
	}

	consumer := firedwake.New(deps.Logger, deps.WakeChannel, deps.Config.RabbitmqWakeReadyQueue, services.FireReminder)
	if err := consumer.Consume(); err != nil {
		panic(err)
	}

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
		dl.Entry("schedulingDegraded", deps.SchedulingDegraded),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		deps.Logger.Error(context.Background(), "HTTP server shutdown failed.", dl.Entry("err", err))
	} else {
		deps.Logger.Info(context.Background(), "HTTP server shut down gracefully.")
	}
	shutDownDeps()
}
