package cmd

import (
	"context"
	"fmt"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/documentstore/memstore"
	"dispatch/internal/adapters/out/documentstore/mongostore"
	"dispatch/internal/adapters/out/documentstore/pgstore"
	"dispatch/internal/adapters/out/documentstore/redisstore"
	"dispatch/internal/adapters/out/driverrepo"
	"dispatch/internal/adapters/out/parcelrepo"
	"dispatch/internal/adapters/out/photostorage"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/application/views"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type CompositionRoot struct {
	cfg      Config
	logger   *zap.Logger
	store    ports.DocumentStore
	clock    kernel.Clock
	registry *prometheus.Registry
	metrics  *metrics.DispatchMetrics
	parcels  ports.ParcelRepository
	drivers  ports.DriverRepository
	uploader ports.PhotoUploader
	jobs     *jobs.JobManager
}

// OpenStore connects the document store selected by cfg.Store.Driver.
func OpenStore(ctx context.Context, cfg Config) (ports.DocumentStore, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
	defer cancel()

	switch cfg.Store.Driver {
	case StoreMemory:
		return memstore.New(), nil
	case StoreRedis:
		return redisstore.New(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
	case StoreMongo:
		return mongostore.New(ctx, mongostore.Options{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Direct:   cfg.Mongo.Direct,
		})
	case StorePostgres:
		return pgstore.Open(cfg.Postgres.DSN())
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// NewCompositionRoot wires every component on top of an opened store. The
// root owns the store from here on and closes it in Close.
func NewCompositionRoot(cfg Config, store ports.DocumentStore, logger *zap.Logger) *CompositionRoot {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewDispatchMetrics(registry)
	clock := kernel.SystemClock{}

	return &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		clock:    clock,
		registry: registry,
		metrics:  m,
		parcels:  parcelrepo.NewRepository(store, clock, cfg.Store.Timeout, m),
		drivers:  driverrepo.NewRepository(store, cfg.Store.Timeout),
		uploader: photostorage.NewClient(photostorage.Config{
			Endpoint:      cfg.Photos.Endpoint,
			Bucket:        cfg.Photos.Bucket,
			Token:         cfg.Photos.Token,
			PublicBaseURL: cfg.Photos.PublicBaseURL,
			Timeout:       cfg.Photos.Timeout,
		}, nil),
		jobs: jobs.NewJobManager(cfg.Store.PollInterval, logger.Named("jobs")),
	}
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.parcels, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.parcels, c.metrics)
}

func (c *CompositionRoot) CreateAdvanceParcelStatusCommandHandler() commands.AdvanceParcelStatusCommandHandler {
	return commands.NewAdvanceParcelStatusCommandHandler(c.parcels, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateRecordDeliveryCommandHandler() commands.RecordDeliveryCommandHandler {
	return commands.NewRecordDeliveryCommandHandler(c.parcels, c.uploader, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.parcels)
}

func (c *CompositionRoot) CreateListUnassignedParcelsQueryHandler() queries.ListUnassignedParcelsQueryHandler {
	return queries.NewListUnassignedParcelsQueryHandler(c.parcels)
}

func (c *CompositionRoot) CreateListAssignedParcelsQueryHandler() queries.ListAssignedParcelsQueryHandler {
	return queries.NewListAssignedParcelsQueryHandler(c.parcels)
}

func (c *CompositionRoot) CreateListDriverParcelsQueryHandler() queries.ListDriverParcelsQueryHandler {
	return queries.NewListDriverParcelsQueryHandler(c.parcels)
}

func (c *CompositionRoot) CreateListAvailableDriversQueryHandler() queries.ListAvailableDriversQueryHandler {
	return queries.NewListAvailableDriversQueryHandler(c.drivers)
}

// CreateView builds a live view. Stores without push fall back to the
// shared poller.
func (c *CompositionRoot) CreateView(name, driverID string) (*views.View, error) {
	opts := []views.Option{
		views.WithFallback(c.jobs),
		views.WithObserver(c.metrics),
		views.WithLogger(c.logger.Named("views")),
	}

	switch name {
	case views.DispatcherNew:
		return views.NewDispatcherNewView(c.parcels, opts...), nil
	case views.DispatcherAssigned:
		return views.NewDispatcherAssignedView(c.parcels, opts...), nil
	case views.Driver:
		return views.NewDriverView(c.parcels, driverID, opts...)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("view", fmt.Errorf("unknown view %q", name))
	}
}

func (c *CompositionRoot) CreateHTTPServer() *echo.Echo {
	server := httpin.NewServer(httpin.Handlers{
		CreateParcel:         c.CreateCreateParcelCommandHandler(),
		AssignDriver:         c.CreateAssignDriverCommandHandler(),
		AdvanceParcelStatus:  c.CreateAdvanceParcelStatusCommandHandler(),
		RecordDelivery:       c.CreateRecordDeliveryCommandHandler(),
		GetParcel:            c.CreateGetParcelQueryHandler(),
		ListUnassigned:       c.CreateListUnassignedParcelsQueryHandler(),
		ListAssigned:         c.CreateListAssignedParcelsQueryHandler(),
		ListDriverParcels:    c.CreateListDriverParcelsQueryHandler(),
		ListAvailableDrivers: c.CreateListAvailableDriversQueryHandler(),
	}, c.CreateView, c.logger.Named("http"))

	routerCfg := httpin.RouterConfig{
		Auth: httpin.AuthConfig{
			Secret: c.cfg.JWT.Secret,
			Issuer: c.cfg.JWT.Issuer,
			TTL:    c.cfg.JWT.TTL,
		},
		Gatherer: c.registry,
		LogLevel: c.cfg.LogLevel,
	}
	if pinger, ok := c.store.(ports.Pinger); ok {
		routerCfg.Ping = pinger.Ping
	}

	return httpin.NewRouter(server, routerCfg, c.logger.Named("http"))
}

// Close stops the pollers and releases the store.
func (c *CompositionRoot) Close(ctx context.Context) error {
	c.jobs.StopAll()
	if err := c.store.Close(ctx); err != nil {
		return fmt.Errorf("closing document store: %w", err)
	}
	return nil
}
