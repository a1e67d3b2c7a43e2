package session

import (
	"qrcheckin.klederson.com/internal/camera"
	"qrcheckin.klederson.com/internal/checkin"
	"qrcheckin.klederson.com/internal/profile"
	"qrcheckin.klederson.com/internal/qr"
)

// StartMsg asks an idle session to open the camera and scan.
type StartMsg struct{}

// StopMsg abandons the current scan and returns to Idle.
type StopMsg struct{}

// CredentialChangedMsg carries the operator's credential after an edit.
type CredentialChangedMsg struct {
	Value string
}

// SettingsSavedMsg replaces the active profile. It is ignored while the
// settings are locked.
type SettingsSavedMsg struct {
	Profile profile.Profile
}

// Internal messages carry the epoch they were issued under; a message from
// an older epoch is stale and ignored.

type cameraOpenedMsg struct {
	epoch  uint64
	stream camera.Stream
	err    error
}

type frameTickMsg struct {
	epoch uint64
}

type frameDecodedMsg struct {
	epoch uint64
	raw   string
	ok    bool
}

type verifiedMsg struct {
	epoch  uint64
	code   qr.Code
	result checkin.Result
}

type recoverMsg struct {
	epoch uint64
}

type handoffMsg struct {
	epoch uint64
}
