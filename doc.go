// Package vexen is the integration layer for the Vexen identity platform.
//
// It wires three independently developed subsystems behind one handle:
//
//   - identity-service: user identity management
//   - authorization-service: role-based access control
//   - authentication-service: credentials and token issuance
//
// The Container owns subsystem lifecycle: Init brings systems up in
// dependency order (identity, authorization, authentication), accessors
// expose their service surfaces, and Close tears them down in reverse.
// Run provides scoped acquisition with guaranteed release.
//
// Boundary notes:
// - Subsystems are consumed through their published module surface only.
// - The container never reaches into subsystem storage or internals.
// - Cross-subsystem reads (authentication looking up identities) flow
//   through a narrow directory interface injected at wiring time.
package vexen
