package deps

import (
	"context"
	"somenotes/internal/config"
	"somenotes/internal/core/domain/livequery"
	dl "somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	dn "somenotes/internal/core/domain/notification"
	"somenotes/internal/core/domain/reminder"
	duow "somenotes/internal/core/domain/unit_of_work"
	dbnote "somenotes/internal/db/note"
	dbregistration "somenotes/internal/db/registration"
	uow "somenotes/internal/db/unit_of_work"
	"somenotes/internal/implementations/logging"
	"somenotes/internal/implementations/notification"
	reminderscheduler "somenotes/internal/implementations/reminder_scheduler"
	"somenotes/internal/rabbitmq"
	waketimer "somenotes/internal/rabbitmq/publishers/wake_timer"
	"sync"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
	"github.com/rabbitmq/amqp091-go"
)

const (
	// SSE stream ids served by the events endpoint.
	NotesStreamID     = "notes"
	RemindersStreamID = "reminders"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork             duow.UnitOfWork
	NoteRepository         note.Repository
	RegistrationRepository reminder.RegistrationRepository

	AllNotes      *livequery.Stream[[]note.Note]
	ReminderNotes *livequery.Stream[[]note.Note]

	ReminderScheduler reminder.Scheduler
	Dispatcher        dn.Dispatcher

	// WakeChannel feeds the fired-wake consumer.
	WakeChannel *rabbitmq.Channel
	// SchedulingDegraded is set when the delayed-message exchange could not
	// be declared and wakes run on TTL fallback timing.
	SchedulingDegraded bool
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.NoteRepository = dbnote.NewPgxRepository(deps.DB)
	deps.RegistrationRepository = dbregistration.NewPgxRepository(deps.DB)

	deps.AllNotes = livequery.NewStream[[]note.Note]()
	deps.ReminderNotes = livequery.NewStream[[]note.Note]()

	closeWakeTimer := deps.initWakeTimer()

	deps.Dispatcher = notification.NewRedisSSE(deps.Logger, deps.Redis, deps.SseServer)

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeWakeTimer,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	deps.SseServer.CreateStream(NotesStreamID)
	deps.SseServer.CreateStream(RemindersStreamID)
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

// initWakeTimer declares the broker topology and builds the scheduler. The
// x-delayed-message exchange needs a broker plugin, when declaring it fails
// the timer falls back to a TTL waiting queue dead-lettering into the ready
// queue, with best-effort timing only.
func (deps *Deps) initWakeTimer() func() {
	deps.SchedulingDegraded = !deps.probeDelayedExchange()

	channel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	if _, err := channel.QueueDeclare(deps.Config.RabbitmqWakeReadyQueue, true, false, false, false, nil); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	if deps.SchedulingDegraded {
		deps.Logger.Warning(
			context.Background(),
			"Delayed-message exchange is unavailable, wake timing is degraded.",
			dl.Entry("exchange", deps.Config.RabbitmqDelayedExchange),
		)
		_, err = channel.QueueDeclare(deps.Config.RabbitmqWakeWaitQueue, true, false, false, false, amqp091.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": deps.Config.RabbitmqWakeReadyQueue,
		})
		if err != nil {
			deps.Logger.Error(context.Background(), "Could not create RabbitMQ wait queue.", dl.Entry("err", err))
			panic(err)
		}
	} else {
		if err := channel.QueueBind(
			deps.Config.RabbitmqWakeReadyQueue,
			deps.Config.RabbitmqWakeReadyQueue,
			deps.Config.RabbitmqDelayedExchange,
			false,
			nil,
		); err != nil {
			deps.Logger.Error(context.Background(), "Could not bind queue to RabbitMQ exchange.", dl.Entry("err", err))
			panic(err)
		}
	}

	wakeChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	deps.WakeChannel = wakeChannel

	deps.ReminderScheduler = reminderscheduler.New(
		deps.Logger,
		deps.RegistrationRepository,
		waketimer.NewRabbitMQ(
			deps.Logger,
			channel,
			deps.Config.RabbitmqDelayedExchange,
			deps.Config.RabbitmqWakeReadyQueue,
			deps.Config.RabbitmqWakeWaitQueue,
			deps.SchedulingDegraded,
			deps.Now,
		),
		deps.Now,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down wake timer.")
		wakeChannel.Close()
		channel.Close()
		deps.Logger.Info(context.Background(), "Wake timer shut down.")
	}
}

// probeDelayedExchange tries to declare the delayed exchange on a throwaway
// channel. A failed declare closes the channel, which is why the probe does
// not share one with the publisher.
func (deps *Deps) probeDelayedExchange() bool {
	channel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	err = channel.ExchangeDeclare(
		deps.Config.RabbitmqDelayedExchange,
		"x-delayed-message",
		true,
		false,
		false,
		false,
		amqp091.Table{"x-delayed-type": "direct"},
	)
	if err != nil {
		return false
	}
	channel.Close()
	return true
}

// StreamIDs lists the SSE streams the events endpoint serves.
func (deps *Deps) StreamIDs() []string {
	return []string{NotesStreamID, RemindersStreamID, notification.AlertsStreamID}
}
