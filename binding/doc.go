// Package binding exposes the checksum engine to dynamically typed callers.
//
// Callers pass loosely typed, positional JSON arguments the way a script
// would call calculateCrc(useHardwareCrc, data, initialCrc). The package
// validates their shape before anything reaches the engine and serves the
// same two methods over JSON-RPC 2.0.
package binding
