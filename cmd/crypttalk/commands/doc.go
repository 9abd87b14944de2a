// Package commands defines the crypttalk CLI surface: identity
// management (init, fingerprint, export-key) and the envelope round
// trip (encrypt, decrypt, delete-session).
package commands
