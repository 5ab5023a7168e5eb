package identity

import (
	"context"
	"fmt"
	"log/slog"

	"vexen/contexts/identity-access/identity-service/adapters/memory"
	postgresadapter "vexen/contexts/identity-access/identity-service/adapters/postgres"
	"vexen/contexts/identity-access/identity-service/application"
	"vexen/contexts/identity-access/identity-service/ports"
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

// System is the identity subsystem handle owned by the container. It is
// inert until Init and must not be used after Close.
type System struct {
	cfg    Config
	logger *slog.Logger

	pg        *db.Postgres
	mem       *memory.Store
	service   *application.Service
	directory ports.Directory
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
		s.directory = s.mem
		return nil
	}

	pg, err := db.Connect(ctx, db.Config{
		DSN:         s.cfg.DatabaseURL,
		Echo:        s.cfg.Echo,
		PoolSize:    s.cfg.PoolSize,
		MaxOverflow: s.cfg.MaxOverflow,
	})
	if err != nil {
		return fmt.Errorf("identity-service: %w", err)
	}

	repo := postgresadapter.NewRepository(pg.DB, s.logger)
	s.pg = pg
	s.service = &application.Service{
		Repo:   repo,
		Clock:  postgresadapter.SystemClock{},
		IDGen:  postgresadapter.UUIDGenerator{},
		Logger: s.logger,
	}
	s.directory = repo

	s.logger.Info("identity system initialised",
		"event", "identity_system_initialised",
		"module", "identity-access/identity-service",
	)
	return nil
}

// Close releases the connection pool. Safe to call when Init never ran.
func (s *System) Close(_ context.Context) error {
	s.service = nil
	s.directory = nil
	if s.pg == nil {
		return nil
	}
	pg := s.pg
	s.pg = nil
	if err := pg.Close(); err != nil {
		return fmt.Errorf("identity-service: close pool: %w", err)
	}
	return nil
}

// Service returns the identity CRUD surface. Nil before Init.
func (s *System) Service() *application.Service {
	return s.service
}

// Directory returns the read surface shared with other subsystems. Nil
// before Init.
func (s *System) Directory() ports.Directory {
	return s.directory
}
