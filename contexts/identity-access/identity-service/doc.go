// Package identity implements the identity-service subsystem inside Vexen.
//
// Layering:
// - domain: core entities, invariants, errors
// - application: identity CRUD service using explicit ports
// - ports: stable boundaries for persistence and the directory read surface
// - adapters: concrete postgres and memory implementations
//
// Boundary notes:
// - Keep this module self-contained under the identity-access context.
// - Other subsystems read identities only through ports.Directory.
// - The container owns this module's lifecycle via System.Init/Close.
package identity
