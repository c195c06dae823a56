// Package keystore defines the portable contract for OS secret-store backends in credstore.
//
// A Backend is a handle on a single stored secret: it can write, read, and
// delete that secret in the operating system's native credential store. A
// Builder produces backends from a (service, user) pair, or from an explicit
// platform-specific target name for callers that need their own naming
// convention. Which concrete backend a builder produces is decided once, at
// process startup, by the platform the binary was built for.
//
// # Error Handling
//
// Backends translate every platform failure into the taxonomy defined in this
// package before returning:
//   - ErrNoEntry for a missing secret (read or delete)
//   - NoStorageAccessError when the store is unreachable in the current session
//   - PlatformFailureError for any other store-level failure
//   - InvalidError and TooLongError for attribute problems detected before any
//     store call is made
//   - BadEncodingError when stored bytes cannot be decoded as text
//
// Callers should distinguish at least "secret not found" from "storage
// unavailable" from "other failure" when surfacing these to users. Backends
// never retry automatically: none of these conditions is transient in a way a
// blind retry would fix.
//
// # Concurrency
//
// Backends hold no locks. Concurrent operations against different secrets are
// independent; concurrent operations against the same secret race at the
// store layer with last-writer-wins semantics, matching the atomicity the
// native store itself provides.
//
// # Security Considerations
//
// Implementations must never log secret values. Use logging.Secret when a
// value must appear in a formatted message.
package keystore
