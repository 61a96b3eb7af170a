/*
Package ports defines the driven ports (interfaces) of the cipher engine.

These interfaces decouple session handling from storage and coordination
backends, so that the same session manager runs in a CLI with a file store
or behind an HTTP server with Redis.

# Key Interfaces

  - SnapshotStore: persists and loads rotor position snapshots per session.
  - DistributedLocker: distributed locking for concurrent access to one session.
*/
package ports
