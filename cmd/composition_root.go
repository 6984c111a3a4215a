package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/memory"
	"orderflow/internal/adapters/out/metrics"
	"orderflow/internal/adapters/out/notify"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/docstore"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type documentStore interface {
	ports.DocumentStore
	ports.DocumentFinder
}

type CompositionRoot struct {
	config Config
	logger *slog.Logger
	clock  kernel.Clock

	store      documentStore
	changeFeed ports.ChangeFeed
	uowFactory ports.UnitOfWorkFactory
	sender     ports.NotificationSender
	engine     services.StatusRuleEngine

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	closers []func() error
}

// NewCompositionRoot opens the configured document store. Notification
// delivery is connected separately by ConnectNotifications.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	engine, err := services.NewStatusRuleEngine(services.DefaultStatusRules()...)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &CompositionRoot{
		config:   config,
		logger:   logger,
		clock:    kernel.SystemClock(),
		engine:   engine,
		registry: registry,
		metrics:  metrics.New(registry),
	}

	switch config.StoreDriver {
	case StoreDriverMemory:
		store := memory.NewStore(c.clock, order.Collection)
		c.store = store
		c.changeFeed = store
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
	default:
		if err = c.openPostgres(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *CompositionRoot) openPostgres() error {
	gormDB, err := gorm.Open(gorm_postgres.Open(c.config.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = gormDB.AutoMigrate(&docstore.DocumentDTO{}, &docstore.ChangeDTO{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	c.closers = append(c.closers, sqlDB.Close)

	c.store = docstore.NewGormDocumentStore(gormDB, nil, order.Collection)
	c.changeFeed = docstore.NewGormChangeFeed(gormDB)
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.logger, order.Collection)
	return nil
}

// ConnectNotifications creates the configured notification sender.
func (c *CompositionRoot) ConnectNotifications(ctx context.Context) error {
	switch c.config.NotifyDriver {
	case NotifyDriverAMQP:
		sender, err := notify.DialAMQP(c.config.AMQPURL, c.config.AMQPExchange, c.logger)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.closers = append(c.closers, sender.Close)
		c.sender = sender
	case NotifyDriverKafka:
		sender, err := notify.NewKafkaSender(ctx, c.config.KafkaBrokers, c.config.KafkaTopicPrefix)
		if err != nil {
			return fmt.Errorf("failed to connect to Kafka: %w", err)
		}
		c.closers = append(c.closers, sender.Close)
		c.sender = sender
	case NotifyDriverRedis:
		client, err := notify.NewRedisClient(ctx, c.config.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.closers = append(c.closers, client.Close)
		c.sender = notify.NewRedisStreamSender(client, c.config.RedisStreamPrefix, c.config.RedisStreamMaxLen)
	default:
		c.sender = notify.NewLogSender(c.logger)
	}

	c.logger.InfoContext(ctx, "notifications connected", "type", c.sender.Type())
	return nil
}

// Close releases connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAutomateOrderStatusCommandHandler() commands.AutomateOrderStatusCommandHandler {
	sender := c.sender
	if sender == nil {
		sender = notify.NewLogSender(c.logger)
	}
	return commands.NewAutomateOrderStatusCommandHandler(c.uow(), sender, c.engine, c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateUpsertOrderCommandHandler() commands.UpsertOrderCommandHandler {
	return commands.NewUpsertOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateSeedDirectoryCommandHandler() commands.SeedDirectoryCommandHandler {
	return commands.NewSeedDirectoryCommandHandler(c.uow(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetOrderAuditTrailQueryHandler() queries.GetOrderAuditTrailQueryHandler {
	return queries.NewGetOrderAuditTrailQueryHandler(c.store)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateUpsertOrderCommandHandler(),
		c.CreateAutomateOrderStatusCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderAuditTrailQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAutomateOrderStatusCommandHandler(),
		c.changeFeed,
		jobs.RelayOptions{
			Schedule:  c.config.RelaySchedule,
			BatchSize: c.config.RelayBatchSize,
			Recorder:  c.metrics,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
