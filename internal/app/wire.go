package app

import (
	"github.com/sirupsen/logrus"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/protocol/ratchet"
	identitysvc "github.com/sethia-shubhamm/Crypt-Talk/internal/services/identity"
	messagesvc "github.com/sethia-shubhamm/Crypt-Talk/internal/services/message"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/store"
)

// Wire bundles the stores and services for the CLI.
type Wire struct {
	Identities domain.IdentityStore
	Sessions   domain.SessionStore
	IDs        *identitysvc.Service
	Messages   *messagesvc.Service
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) *Wire {
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	identityStore := store.NewIdentityFileStore(cfg.Home, cfg.KDFIterations)
	sessionStore := store.NewSessionFileStore(cfg.Home)

	rcfg := ratchet.Config{MaxSkipped: cfg.MaxSkipped, Harden: cfg.Harden}

	return &Wire{
		Identities: identityStore,
		Sessions:   sessionStore,
		IDs:        identitysvc.New(identityStore),
		Messages:   messagesvc.New(identityStore, sessionStore, rcfg),
	}
}
