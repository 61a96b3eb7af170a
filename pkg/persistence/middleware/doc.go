// Package middleware wraps a ports.SnapshotStore with extra behavior, such as
// sealing rotor positions before they reach the backend.
package middleware
