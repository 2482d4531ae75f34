// Package identity defines the contract between the session gate and the
// external system of record for users, credentials, and sessions. The gate
// never stores credentials or sessions itself; every lookup, validation, and
// revocation is delegated to a Store implementation.
//
// The package also ships MemoryStore, a map-backed Store suitable for tests
// and sample applications. Production deployments are expected to use a
// durable implementation such as pkg/pgstore.
package identity
