package authentication

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vexen/contexts/identity-access/authentication-service/adapters/memory"
	postgresadapter "vexen/contexts/identity-access/authentication-service/adapters/postgres"
	"vexen/contexts/identity-access/authentication-service/application"
	"vexen/contexts/identity-access/authentication-service/ports"
	"vexen/internal/platform/db"
)

// Config is the slice of shared configuration this subsystem needs. It
// carries the identity directory reference because authentication
// resolves identities through the identity subsystem rather than owning
// a copy of identity data.
type Config struct {
	DatabaseURL     string
	Echo            bool
	PoolSize        int
	MaxOverflow     int
	SecretKey       string
	Algorithm       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Directory       ports.IdentityDirectory
	Logger          *slog.Logger
}

// System is the authentication subsystem handle owned by the container.
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

// Init validates the token configuration, opens the subsystem's own
// connection pool, and wires the service. A bad secret or algorithm
// fails here so the container can surface it as a bring-up error.
func (s *System) Init(ctx context.Context) error {
	signer, err := application.NewTokenSigner(s.cfg.SecretKey, s.cfg.Algorithm, s.cfg.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("authentication-service: %w", err)
	}

	refreshTTL := s.cfg.RefreshTokenTTL
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}

	if s.mem != nil {
		s.service = &application.Service{
			Credentials: s.mem,
			Tokens:      s.mem,
			Directory:   s.cfg.Directory,
			Signer:      signer,
			Hasher:      application.DefaultPasswordHasher(),
			Clock:       s.mem,
			RefreshTTL:  refreshTTL,
			Logger:      s.logger,
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
		return fmt.Errorf("authentication-service: %w", err)
	}

	repo := postgresadapter.NewRepository(pg.DB, s.logger)
	s.pg = pg
	s.service = &application.Service{
		Credentials: repo,
		Tokens:      repo,
		Directory:   s.cfg.Directory,
		Signer:      signer,
		Hasher:      application.DefaultPasswordHasher(),
		Clock:       postgresadapter.SystemClock{},
		RefreshTTL:  refreshTTL,
		Logger:      s.logger,
	}

	s.logger.Info("authentication system initialised",
		"event", "auth_system_initialised",
		"module", "identity-access/authentication-service",
		"algorithm", s.cfg.Algorithm,
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
		return fmt.Errorf("authentication-service: close pool: %w", err)
	}
	return nil
}

// Service returns the authentication flow surface. Nil before Init.
func (s *System) Service() *application.Service {
	return s.service
}
