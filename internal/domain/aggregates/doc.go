// Package aggregates defines domain-facing aggregate contracts.
//
// These contracts avoid persistence/transport details and describe the write
// boundaries where the farm/crop ownership invariants are enforced atomically.
package aggregates
