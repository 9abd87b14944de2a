// Package domain defines the core types shared across Crypt-Talk: key
// aliases, the wire Envelope, Double Ratchet state, persisted session
// records, store interfaces and the error taxonomy.
//
// Types here carry no behaviour beyond encoding and lifecycle helpers;
// protocol logic lives in internal/protocol and orchestration in
// internal/services.
package domain
