// Package types provides shared data structures for the file engine.
//
// Core Types:
//   - Session: authenticated identity (user + role) held by the engine
//   - Role: admin or user
//
// Example Usage:
//
//	s := types.NewSession("jiya", types.RoleUser)
//	if s.IsAdmin() { ... }
package types
