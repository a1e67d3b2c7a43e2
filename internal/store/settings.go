package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"qrcheckin.klederson.com/internal/profile"
)

// Settings resolves and persists the active performance profile.
type Settings struct {
	kv     KV
	prober profile.Prober
	log    *slog.Logger
}

// NewSettings creates a settings store over kv. prober picks the default
// profile when nothing usable is persisted.
func NewSettings(kv KV, prober profile.Prober, log *slog.Logger) *Settings {
	if log == nil {
		log = slog.Default()
	}
	return &Settings{kv: kv, prober: prober, log: log}
}

// Default returns the preset the device heuristic picks.
func (s *Settings) Default() profile.Profile {
	return profile.MustPreset(profile.Detect(s.prober))
}

// Resolve returns the persisted profile when present and valid. Fields
// missing from the persisted JSON keep the computed default.
func (s *Settings) Resolve(ctx context.Context) profile.Profile {
	def := s.Default()

	raw, ok, err := s.kv.Get(ctx, KeySettings)
	if err != nil {
		s.log.Warn("read scanner settings", "error", err)
		return def
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return def
	}

	p := def
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warn("decode scanner settings", "error", err)
		s.discard(ctx)
		return def
	}
	if err := p.Validate(); err != nil {
		s.log.Warn("discard invalid scanner settings", "error", err)
		s.discard(ctx)
		return def
	}
	return p
}

// discard drops an unusable persisted profile so the next save starts clean.
func (s *Settings) discard(ctx context.Context) {
	if err := s.kv.Delete(ctx, KeySettings); err != nil {
		s.log.Warn("delete scanner settings", "error", err)
	}
}

// Persist writes p. Failures are logged and otherwise ignored; settings are a
// convenience and never block scanning.
func (s *Settings) Persist(ctx context.Context, p profile.Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		s.log.Warn("encode scanner settings", "error", err)
		return
	}
	if err := s.kv.Put(ctx, KeySettings, string(data)); err != nil {
		s.log.Warn("save scanner settings", "error", err)
	}
}
