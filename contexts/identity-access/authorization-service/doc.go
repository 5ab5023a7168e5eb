// Package authorization implements the role-based access control
// subsystem inside Vexen.
//
// Layering:
// - domain: role/assignment entities, policy evaluation, errors
// - application: role CRUD, assignment, and permission checks over ports
// - ports: stable boundaries for persistence
// - adapters: concrete postgres and memory implementations
//
// Boundary notes:
// - Keep this module self-contained under the identity-access context.
// - Permission checks deny by default when lookups fail.
// - The container owns this module's lifecycle via System.Init/Close.
package authorization
