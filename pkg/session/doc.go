/*
Package session shares rotor machines between callers through a session ID.

A Machine is single-threaded and stateful. The Manager makes it usable from
concurrent callers (HTTP handlers, MCP tools, several CLI invocations) by
persisting only the rotor positions in a ports.SnapshotStore and rebuilding the
machine around them on every call, under a per-session lock and, when
configured, a distributed lock.
*/
package session
