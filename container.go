package vexen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	authentication "vexen/contexts/identity-access/authentication-service"
	authapplication "vexen/contexts/identity-access/authentication-service/application"
	autherrors "vexen/contexts/identity-access/authentication-service/domain/errors"
	authports "vexen/contexts/identity-access/authentication-service/ports"
	authorization "vexen/contexts/identity-access/authorization-service"
	authzapplication "vexen/contexts/identity-access/authorization-service/application"
	identity "vexen/contexts/identity-access/identity-service"
	identityapplication "vexen/contexts/identity-access/identity-service/application"
	identityerrors "vexen/contexts/identity-access/identity-service/domain/errors"
	identityports "vexen/contexts/identity-access/identity-service/ports"
)

// Lifecycle errors returned by Container methods.
var (
	// ErrNotInitialized is returned by accessors before a successful Init
	// or after Close.
	ErrNotInitialized = errors.New("vexen: container not initialized, call Init first")

	// ErrAlreadyInitialized is returned by Init on a ready container.
	// Re-entrant initialization is rejected rather than treated as a
	// no-op so double bring-up bugs surface immediately.
	ErrAlreadyInitialized = errors.New("vexen: container already initialized")

	// ErrClosed is returned by Init on a closed container; closed is a
	// terminal state.
	ErrClosed = errors.New("vexen: container closed")
)

type containerState int

const (
	stateUninitialized containerState = iota
	stateReady
	stateClosed
)

// IdentitySystem is the identity subsystem surface the container owns.
type IdentitySystem interface {
	Init(ctx context.Context) error
	Close(ctx context.Context) error
	Service() *identityapplication.Service
	Directory() identityports.Directory
}

// AuthorizationSystem is the RBAC subsystem surface the container owns.
type AuthorizationSystem interface {
	Init(ctx context.Context) error
	Close(ctx context.Context) error
	Service() *authzapplication.Service
}

// AuthenticationSystem is the credential/token subsystem surface the
// container owns.
type AuthenticationSystem interface {
	Init(ctx context.Context) error
	Close(ctx context.Context) error
	Service() *authapplication.Service
}

// Container wires the three Vexen subsystems behind one handle. It owns
// their lifecycle exclusively: Init brings them up in dependency order,
// Close tears them down in reverse. A Container is not safe for
// concurrent Init/Close calls; callers serialize lifecycle externally.
// Accessors are safe concurrently once the container is ready.
//
// Multiple containers with different configurations can coexist; there
// is no process-wide registry.
type Container struct {
	cfg    Config
	logger *slog.Logger
	state  containerState

	identity       IdentitySystem
	authorization  AuthorizationSystem
	authentication AuthenticationSystem

	newIdentity       func(identity.Config) IdentitySystem
	newAuthorization  func(authorization.Config) AuthorizationSystem
	newAuthentication func(authentication.Config) AuthenticationSystem
}

// New builds an uninitialized container over PostgreSQL-backed subsystems.
func New(cfg Config) *Container {
	return &Container{
		cfg:    cfg,
		logger: slog.Default().With("service", "vexen"),

		newIdentity: func(slice identity.Config) IdentitySystem {
			return identity.New(slice)
		},
		newAuthorization: func(slice authorization.Config) AuthorizationSystem {
			return authorization.New(slice)
		},
		newAuthentication: func(slice authentication.Config) AuthenticationSystem {
			return authentication.New(slice)
		},
	}
}

// NewInMemory builds an uninitialized container over memory-backed
// subsystems. Intended for tests and local development; the DatabaseURL
// in cfg is ignored.
func NewInMemory(cfg Config) *Container {
	c := New(cfg)
	c.newIdentity = func(slice identity.Config) IdentitySystem {
		return identity.NewInMemory(slice)
	}
	c.newAuthorization = func(slice authorization.Config) AuthorizationSystem {
		return authorization.NewInMemory(slice)
	}
	c.newAuthentication = func(slice authentication.Config) AuthenticationSystem {
		return authentication.NewInMemory(slice)
	}
	return c
}

// SetLogger replaces the container's logger. Must be called before Init.
func (c *Container) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Init brings up identity, then authorization, then authentication.
// The order is load-bearing: authentication receives a live reference to
// the identity subsystem's directory surface, so identity must finish
// initializing strictly before authentication begins. On any bring-up
// failure the subsystems already up are closed in reverse order and the
// failure is propagated; the container stays uninitialized.
func (c *Container) Init(ctx context.Context) error {
	switch c.state {
	case stateReady:
		return ErrAlreadyInitialized
	case stateClosed:
		return ErrClosed
	}

	idSys := c.newIdentity(identity.Config{
		DatabaseURL: c.cfg.DatabaseURL,
		Echo:        c.cfg.Echo,
		PoolSize:    c.cfg.PoolSize,
		MaxOverflow: c.cfg.MaxOverflow,
		Logger:      c.logger,
	})
	if err := idSys.Init(ctx); err != nil {
		return fmt.Errorf("init identity system: %w", err)
	}
	c.identity = idSys

	authzSys := c.newAuthorization(authorization.Config{
		DatabaseURL: c.cfg.DatabaseURL,
		Echo:        c.cfg.Echo,
		PoolSize:    c.cfg.PoolSize,
		MaxOverflow: c.cfg.MaxOverflow,
		Logger:      c.logger,
	})
	if err := authzSys.Init(ctx); err != nil {
		c.releasePartial(ctx)
		return fmt.Errorf("init authorization system: %w", err)
	}
	c.authorization = authzSys

	authSys := c.newAuthentication(authentication.Config{
		DatabaseURL:     c.cfg.DatabaseURL,
		Echo:            c.cfg.Echo,
		PoolSize:        c.cfg.PoolSize,
		MaxOverflow:     c.cfg.MaxOverflow,
		SecretKey:       c.cfg.SecretKey,
		Algorithm:       string(c.cfg.Algorithm),
		AccessTokenTTL:  c.cfg.AccessTokenTTL,
		RefreshTokenTTL: c.cfg.RefreshTokenTTL,
		Directory:       directoryAdapter{dir: idSys.Directory()},
		Logger:          c.logger,
	})
	if err := authSys.Init(ctx); err != nil {
		c.releasePartial(ctx)
		return fmt.Errorf("init authentication system: %w", err)
	}
	c.authentication = authSys

	c.state = stateReady
	c.logger.Info("container ready",
		"event", "container_ready",
		"module", "vexen",
	)
	return nil
}

// Close tears down subsystems in reverse order of construction:
// authentication first, then authorization, then identity. Teardown is
// best-effort: one subsystem's failure never prevents closing the rest;
// failures are logged and aggregated into the returned error. Close on a
// never-initialized container is a safe no-op, and a second Close is a
// no-op as well.
func (c *Container) Close(ctx context.Context) error {
	if c.state != stateReady {
		return nil
	}

	err := c.closeAll(ctx)
	c.state = stateClosed
	c.logger.Info("container closed",
		"event", "container_closed",
		"module", "vexen",
	)
	return err
}

// Identity returns the identity subsystem handle.
func (c *Container) Identity() (IdentitySystem, error) {
	if c.state != stateReady {
		return nil, ErrNotInitialized
	}
	return c.identity, nil
}

// Authorization returns the RBAC subsystem handle.
func (c *Container) Authorization() (AuthorizationSystem, error) {
	if c.state != stateReady {
		return nil, ErrNotInitialized
	}
	return c.authorization, nil
}

// Authentication returns the credential/token subsystem handle.
func (c *Container) Authentication() (AuthenticationSystem, error) {
	if c.state != stateReady {
		return nil, ErrNotInitialized
	}
	return c.authentication, nil
}

// releasePartial closes whatever came up before a bring-up failure, in
// reverse order, and empties the slots so no partial state survives.
// Teardown failures here are logged only; the bring-up failure is the
// error the caller needs.
func (c *Container) releasePartial(ctx context.Context) {
	if err := c.closeAll(ctx); err != nil {
		c.logger.Error("cleanup after failed init",
			"event", "container_partial_cleanup_failed",
			"module", "vexen",
			"error", err.Error(),
		)
	}
}

func (c *Container) closeAll(ctx context.Context) error {
	var errs []error
	if c.authentication != nil {
		if err := c.authentication.Close(ctx); err != nil {
			c.logger.Error("closing authentication system",
				"event", "container_subsystem_close_failed",
				"module", "vexen",
				"subsystem", "authentication",
				"error", err.Error(),
			)
			errs = append(errs, err)
		}
		c.authentication = nil
	}
	if c.authorization != nil {
		if err := c.authorization.Close(ctx); err != nil {
			c.logger.Error("closing authorization system",
				"event", "container_subsystem_close_failed",
				"module", "vexen",
				"subsystem", "authorization",
				"error", err.Error(),
			)
			errs = append(errs, err)
		}
		c.authorization = nil
	}
	if c.identity != nil {
		if err := c.identity.Close(ctx); err != nil {
			c.logger.Error("closing identity system",
				"event", "container_subsystem_close_failed",
				"module", "vexen",
				"subsystem", "identity",
				"error", err.Error(),
			)
			errs = append(errs, err)
		}
		c.identity = nil
	}
	return errors.Join(errs...)
}

// directoryAdapter maps the identity subsystem's directory surface onto
// the narrow interface authentication declares for itself. The two
// subsystems stay decoupled; only the composition root knows both types.
type directoryAdapter struct {
	dir identityports.Directory
}

func (a directoryAdapter) Lookup(ctx context.Context, key string) (authports.IdentityRecord, error) {
	record, err := a.dir.Lookup(ctx, key)
	if err != nil {
		if errors.Is(err, identityerrors.ErrIdentityNotFound) {
			return authports.IdentityRecord{}, autherrors.ErrIdentityNotFound
		}
		return authports.IdentityRecord{}, err
	}
	return authports.IdentityRecord{
		UserID: record.UserID,
		Email:  record.Email,
		Active: record.IsActive(),
	}, nil
}
