package app

// Config holds runtime wiring options for building the app.
type Config struct {
	Home          string // config directory, e.g. $HOME/.crypttalk
	KDFIterations int    // PBKDF2 work factor for sealed keys; 0 = keystore default
	MaxSkipped    int    // skipped-key cache cap per session; 0 = ratchet default
	Harden        bool   // apply the layered cipher pipeline over AEAD ciphertext
	Verbose       bool   // debug-level logging
}
