// Package authentication implements the credential and token subsystem
// inside Vexen.
//
// Layering:
// - domain: credential/token entities and errors
// - application: register/login/refresh/verify flows, password hashing,
//   token signing
// - ports: persistence boundaries plus the identity directory this
//   subsystem consumes
// - adapters: concrete postgres and memory implementations
//
// Boundary notes:
// - This module never owns identity data; it resolves identities through
//   the injected ports.IdentityDirectory.
// - Refresh tokens are stored hashed and rotated on every refresh.
// - The container owns this module's lifecycle via System.Init/Close.
package authentication
