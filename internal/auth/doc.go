// Package auth owns signup validation, password hashing and login verification.
//
// # Password Policy
//
// [ValidatePassword] checks, in order, that a password has an ASCII letter, an ASCII digit and
// one of the symbols in [Symbols], and that it differs from the username. Only the first
// violated rule is reported, so the message a user sees depends on that order.
//
// # Hashing
//
// [BcryptHasher] salts every hash with fresh randomness and embeds the salt and cost in the
// output, so two hashes of the same password differ yet both verify. Comparison is constant time.
//
// # Sessions
//
// [Manager.Login] returns a [Session] value naming the authenticated user. Callers keep it and
// pass it to every user-scoped operation; nothing in this package holds ambient login state.
package auth
