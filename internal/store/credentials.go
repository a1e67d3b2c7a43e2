package store

import (
	"context"
	"log/slog"
)

// Credentials holds the operator's DEAuth string for the session.
type Credentials struct {
	kv  KV
	log *slog.Logger
}

// NewCredentials creates a credential store over kv.
func NewCredentials(kv KV, log *slog.Logger) *Credentials {
	if log == nil {
		log = slog.Default()
	}
	return &Credentials{kv: kv, log: log}
}

// Get returns the saved credential, or "" when none is saved.
func (c *Credentials) Get(ctx context.Context) string {
	v, _, err := c.kv.Get(ctx, KeyCredential)
	if err != nil {
		c.log.Warn("read credential", "error", err)
		return ""
	}
	return v
}

// Save stores value, replacing any previous credential.
func (c *Credentials) Save(ctx context.Context, value string) {
	if err := c.kv.Put(ctx, KeyCredential, value); err != nil {
		c.log.Warn("save credential", "error", err)
	}
}
