package authorization

import (
	"context"
	"fmt"
	"log/slog"

	"vexen/contexts/identity-access/authorization-service/adapters/memory"
	postgresadapter "vexen/contexts/identity-access/authorization-service/adapters/postgres"
	"vexen/contexts/identity-access/authorization-service/application"
	"vexen/internal/platform/db"
)

// Config is the slice of shared configuration this subsystem needs.
type Config struct {
	DatabaseURL string
	Echo        bool
	PoolSize    int
	MaxOverflow int
	Logger      *slog.Logger
}

// System is the authorization subsystem handle owned by the container.
type System struct {
	cfg    Config
	logger *slog.Logger

	pg      *db.Postgres
	mem     *memory.Store
	service *application.Service
}

// New builds an uninitialised System backed by PostgreSQL.
func New(cfg Config) *System {
	return &System{
		cfg:    cfg,
		logger: application.ResolveLogger(cfg.Logger),
	}
}

// NewInMemory builds an uninitialised System backed by the memory adapter.
// Intended for tests and local development wiring.
func NewInMemory(cfg Config) *System {
	s := New(cfg)
	s.mem = memory.NewStore()
	return s
}

// Init opens the subsystem's own connection pool and wires the service.
func (s *System) Init(ctx context.Context) error {
	if s.mem != nil {
		s.service = &application.Service{
			Repo:   s.mem,
			Clock:  s.mem,
			IDGen:  s.mem,
			Logger: s.logger,
		}
		return nil
	}

	pg, err := db.Connect(ctx, db.Config{
		DSN:         s.cfg.DatabaseURL,
		Echo:        s.cfg.Echo,
		PoolSize:    s.cfg.PoolSize,
		MaxOverflow: s.cfg.MaxOverflow,
	})
	if err != nil {
		return fmt.Errorf("authorization-service: %w", err)
	}

	s.pg = pg
	s.service = &application.Service{
		Repo:   postgresadapter.NewRepository(pg.DB, s.logger),
		Clock:  postgresadapter.SystemClock{},
		IDGen:  postgresadapter.UUIDGenerator{},
		Logger: s.logger,
	}

	s.logger.Info("authorization system initialised",
		"event", "authz_system_initialised",
		"module", "identity-access/authorization-service",
	)
	return nil
}

// Close releases the connection pool. Safe to call when Init never ran.
func (s *System) Close(_ context.Context) error {
	s.service = nil
	if s.pg == nil {
		return nil
	}
	pg := s.pg
	s.pg = nil
	if err := pg.Close(); err != nil {
		return fmt.Errorf("authorization-service: close pool: %w", err)
	}
	return nil
}

// Service returns the role and permission surface. Nil before Init.
func (s *System) Service() *application.Service {
	return s.service
}
