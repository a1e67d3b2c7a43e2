// Package session runs one scan session: camera, frame sampling, decoding,
// verification and timed recovery. A Machine is driven entirely from the
// Bubble Tea update loop; blocking work runs in commands whose results come
// back as messages.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"qrcheckin.klederson.com/internal/camera"
	"qrcheckin.klederson.com/internal/checkin"
	"qrcheckin.klederson.com/internal/config"
	apperrors "qrcheckin.klederson.com/internal/errors"
	"qrcheckin.klederson.com/internal/nav"
	"qrcheckin.klederson.com/internal/profile"
	"qrcheckin.klederson.com/internal/qr"
	"qrcheckin.klederson.com/internal/sampler"
	"qrcheckin.klederson.com/internal/signature"
)

// ErrLocked is returned when settings change while a scan is in progress.
var ErrLocked = errors.New("settings are locked while scanning")

// Verifier performs the remote check-in.
type Verifier interface {
	CheckIn(ctx context.Context, id, eventID, signature string) checkin.Result
}

// CredentialStore keeps the operator credential for the session.
type CredentialStore interface {
	Get(ctx context.Context) string
	Save(ctx context.Context, value string)
}

// SettingsStore resolves and persists the performance profile.
type SettingsStore interface {
	Resolve(ctx context.Context) profile.Profile
	Persist(ctx context.Context, p profile.Profile)
}

// Deps are the collaborators a Machine needs.
type Deps struct {
	Camera      camera.Source
	Decoder     qr.Decoder
	Verifier    Verifier
	Credentials CredentialStore
	Settings    SettingsStore
	Scheduler   Scheduler
	Clock       Clock
	Log         *slog.Logger
	Observer    func(Transition)
}

// Options tune a Machine.
type Options struct {
	EventID        string
	RedirectDelay  time.Duration // Pause in Succeeded before the hand-off
	RequestTimeout time.Duration // Upper bound on one verification call
	Delays         Delays
}

// DefaultDelays are the recovery windows per failure.
func DefaultDelays() Delays {
	return Delays{
		apperrors.CodeFormat:            config.FormatErrorDelay,
		apperrors.CodeMissingCredential: config.MissingCredentialDelay,
		apperrors.CodeCamera:            config.CameraErrorDelay,
		apperrors.CodeNetwork:           config.NetworkErrorDelay,
		apperrors.CodeNotFound:          config.NotFoundDelay,
		apperrors.CodeAPI:               config.APIErrorDelay,
		apperrors.CodeAlreadyCheckedIn:  config.AlreadyCheckedInDelay,
	}
}

// epochs is shared by every Machine so that commands left over from a
// closed machine never match the epoch of its replacement.
var epochs atomic.Uint64

func nextEpoch() uint64 { return epochs.Add(1) }

// Machine is the scan session state machine. It is not safe for concurrent
// use; only the update loop may call it.
type Machine struct {
	deps Deps
	opts Options

	state State
	epoch uint64

	profile    profile.Profile
	credential string
	sampler    *sampler.Sampler
	stream     camera.Stream
	cancel     context.CancelFunc

	code      qr.Code
	attendee  *checkin.Attendee
	signature string
	failure   *Failure
	notice    *Failure
	alert     *Alert
	handedOff bool
}

// New creates a machine at Idle with the persisted credential and profile.
func New(ctx context.Context, deps Deps, opts Options) *Machine {
	if deps.Scheduler == nil {
		deps.Scheduler = TeaScheduler{}
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if opts.Delays == nil {
		opts.Delays = DefaultDelays()
	}
	m := &Machine{
		deps:  deps,
		opts:  opts,
		state: Idle,
	}
	if deps.Credentials != nil {
		m.credential = strings.TrimSpace(deps.Credentials.Get(ctx))
	}
	if deps.Settings != nil {
		m.profile = deps.Settings.Resolve(ctx)
	} else {
		m.profile = profile.MustPreset(profile.Balanced)
	}
	return m
}

// Update handles intents and the machine's own messages. Messages that do
// not belong to the machine are ignored.
func (m *Machine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case StartMsg:
		return m.start()
	case StopMsg:
		m.stop()
		return nil
	case CredentialChangedMsg:
		m.setCredential(msg.Value)
		return nil
	case SettingsSavedMsg:
		if err := m.ApplySettings(msg.Profile); err != nil {
			m.deps.Log.Warn("settings not applied", "error", err)
		}
		return nil

	case cameraOpenedMsg:
		return m.onCameraOpened(msg)
	case frameTickMsg:
		return m.onTick(msg)
	case frameDecodedMsg:
		return m.onDecoded(msg)
	case verifiedMsg:
		return m.onVerified(msg)
	case recoverMsg:
		return m.onRecover(msg)
	case handoffMsg:
		return m.onHandoff(msg)
	}
	return nil
}

func (m *Machine) start() tea.Cmd {
	if m.state != Idle {
		return nil
	}
	if m.credential == "" {
		m.notice = &Failure{
			Code:  apperrors.CodeMissingCredential,
			Delay: m.opts.Delays.of(apperrors.CodeMissingCredential),
			At:    m.deps.Clock.Now(),
		}
		m.deps.Log.Info("start refused", "reason", apperrors.CodeMissingCredential)
		return nil
	}

	m.epoch = nextEpoch()
	m.notice = nil
	m.failure = nil
	m.code = qr.Code{}
	m.attendee = nil
	m.signature = ""
	m.sampler = sampler.New(m.profile)
	m.transition(Acquiring, "")

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	epoch, video, src := m.epoch, m.profile.Video, m.deps.Camera
	return func() tea.Msg {
		s, err := src.Open(ctx, video)
		return cameraOpenedMsg{epoch: epoch, stream: s, err: err}
	}
}

func (m *Machine) stop() {
	switch m.state {
	case Idle, Succeeded:
		return
	}
	m.epoch = nextEpoch()
	m.cancelPending()
	m.release()
	m.failure = nil
	m.transition(Idle, "")
}

// setCredential stores the raw input; checks and signing use it trimmed.
func (m *Machine) setCredential(v string) {
	m.credential = strings.TrimSpace(v)
	if m.deps.Credentials != nil {
		m.deps.Credentials.Save(context.Background(), v)
	}
	if m.credential != "" && m.notice != nil && m.notice.Code == apperrors.CodeMissingCredential {
		m.notice = nil
	}
}

// ApplySettings replaces the active profile and persists it.
func (m *Machine) ApplySettings(p profile.Profile) error {
	if m.Locked() {
		return ErrLocked
	}
	if err := p.Validate(); err != nil {
		return err
	}
	m.profile = p
	if m.deps.Settings != nil {
		m.deps.Settings.Persist(context.Background(), p)
	}
	return nil
}

func (m *Machine) onCameraOpened(msg cameraOpenedMsg) tea.Cmd {
	if msg.epoch != m.epoch || m.state != Acquiring {
		if msg.stream != nil {
			m.deps.Log.Debug("closing late camera stream")
			_ = msg.stream.Close()
		}
		return nil
	}
	m.cancelPending()

	if msg.err != nil {
		m.deps.Log.Warn("camera unavailable", "error", msg.err)
		return m.fail(apperrors.CodeCamera, msg.err.Error(), 0, "")
	}
	m.stream = msg.stream
	m.sampler.Reset()
	m.transition(Scanning, "")
	return m.scheduleTick()
}

func (m *Machine) scheduleTick() tea.Cmd {
	return m.deps.Scheduler.After(m.profile.Video.FrameInterval(), frameTickMsg{epoch: m.epoch})
}

func (m *Machine) onTick(msg frameTickMsg) tea.Cmd {
	if msg.epoch != m.epoch || m.state != Scanning {
		return nil
	}
	now := m.deps.Clock.Now()
	if !m.sampler.Due(now) || m.stream == nil || !m.stream.Ready() {
		return m.scheduleTick()
	}
	img := m.stream.Frame()
	if img == nil {
		return m.scheduleTick()
	}
	frame, ok := m.sampler.Sample(img, now)
	if !ok {
		return m.scheduleTick()
	}

	epoch, dec := m.epoch, m.deps.Decoder
	return func() tea.Msg {
		raw, ok := dec.Decode(frame.Pix, frame.Width, frame.Height)
		return frameDecodedMsg{epoch: epoch, raw: raw, ok: ok}
	}
}

func (m *Machine) onDecoded(msg frameDecodedMsg) tea.Cmd {
	if msg.epoch != m.epoch || m.state != Scanning {
		return nil
	}
	if !msg.ok || msg.raw == "" {
		return m.scheduleTick()
	}

	code := qr.Parse(msg.raw)
	if !code.Valid {
		m.deps.Log.Info("rejected code", "raw", msg.raw)
		return m.fail(apperrors.CodeFormat, msg.raw, 0, "")
	}
	m.code = code
	m.transition(Detected, "")
	return m.verify()
}

func (m *Machine) verify() tea.Cmd {
	m.transition(Verifying, "")
	if m.credential == "" {
		return m.fail(apperrors.CodeMissingCredential, "", 0, "")
	}
	m.signature = signature.Sign(m.credential, m.code.Token)

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if m.opts.RequestTimeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), m.opts.RequestTimeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	m.cancel = cancel

	epoch, code, sig, eventID, v := m.epoch, m.code, m.signature, m.opts.EventID, m.deps.Verifier
	return func() tea.Msg {
		res := v.CheckIn(ctx, code.ID, eventID, sig)
		return verifiedMsg{epoch: epoch, code: code, result: res}
	}
}

func (m *Machine) onVerified(msg verifiedMsg) tea.Cmd {
	if msg.epoch != m.epoch || m.state != Verifying {
		return nil
	}
	m.cancelPending()

	res := msg.result
	switch res.Outcome {
	case checkin.Success:
		m.attendee = res.Attendee
		m.transition(Succeeded, "")
		return m.deps.Scheduler.After(m.opts.RedirectDelay, handoffMsg{epoch: m.epoch})
	case checkin.AlreadyCheckedIn:
		m.alert = &Alert{
			Code: apperrors.CodeAlreadyCheckedIn,
			ID:   msg.code.ID,
			At:   m.deps.Clock.Now(),
		}
		return m.fail(res.Outcome.Code(), msg.code.ID, res.Status, "")
	case checkin.NotFound:
		return m.fail(res.Outcome.Code(), "", res.Status, res.Message)
	case checkin.APIError:
		return m.fail(res.Outcome.Code(), errText(res.Err), res.Status, "")
	default:
		return m.fail(apperrors.CodeNetwork, errText(res.Err), 0, "")
	}
}

// fail enters RecoverableFailure and schedules the return to Idle.
func (m *Machine) fail(code apperrors.Code, detail string, status int, message string) tea.Cmd {
	m.epoch = nextEpoch()
	m.cancelPending()
	delay := m.opts.Delays.of(code)
	m.failure = &Failure{
		Code:    code,
		Delay:   delay,
		Detail:  detail,
		Status:  status,
		Message: message,
		At:      m.deps.Clock.Now(),
	}
	m.transition(RecoverableFailure, code)
	return m.deps.Scheduler.After(delay, recoverMsg{epoch: m.epoch})
}

func (m *Machine) onRecover(msg recoverMsg) tea.Cmd {
	if msg.epoch != m.epoch || m.state != RecoverableFailure {
		return nil
	}
	m.release()
	m.transition(Idle, "")
	return nil
}

func (m *Machine) onHandoff(msg handoffMsg) tea.Cmd {
	if msg.epoch != m.epoch || m.state != Succeeded || m.handedOff {
		return nil
	}
	m.handedOff = true
	m.release()

	var record []byte
	if m.attendee != nil {
		record = m.attendee.Raw
	}
	path := nav.ConfirmPath(nav.Handoff{Record: record, Signature: m.signature})
	m.deps.Log.Info("handing off", "id", m.code.ID)
	return func() tea.Msg {
		return nav.NavigateMsg{Path: path}
	}
}

// Close releases everything; the machine must not be used afterwards.
func (m *Machine) Close() {
	m.epoch = nextEpoch()
	m.cancelPending()
	m.release()
}

func (m *Machine) cancelPending() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// release closes the camera stream at most once.
func (m *Machine) release() {
	if m.stream == nil {
		return
	}
	if err := m.stream.Close(); err != nil {
		m.deps.Log.Warn("camera close failed", "error", err)
	}
	m.stream = nil
}

func (m *Machine) transition(to State, code apperrors.Code) {
	t := Transition{
		From: m.state,
		To:   to,
		Code: code,
		ID:   m.code.ID,
		At:   m.deps.Clock.Now(),
	}
	m.state = to
	m.deps.Log.Debug("session transition", "from", t.From, "to", t.To, "code", t.Code, "id", t.ID)
	if m.deps.Observer != nil {
		m.deps.Observer(t)
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	var e *apperrors.Error
	if errors.As(err, &e) && e.Cause != nil {
		return e.Cause.Error()
	}
	return err.Error()
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Locked reports whether settings edits are refused.
func (m *Machine) Locked() bool { return m.state != Idle }

// Profile returns the active profile.
func (m *Machine) Profile() profile.Profile { return m.profile }

// Credential returns the current credential, trimmed.
func (m *Machine) Credential() string { return m.credential }

// Code returns the last valid code scanned in this session.
func (m *Machine) Code() qr.Code { return m.code }

// Attendee returns the verified attendee once Succeeded.
func (m *Machine) Attendee() *checkin.Attendee { return m.attendee }

// Signature returns the signature sent with the last verification.
func (m *Machine) Signature() string { return m.signature }

// Failure returns the active failure while in RecoverableFailure.
func (m *Machine) Failure() *Failure {
	if m.state != RecoverableFailure {
		return nil
	}
	return m.failure
}

// Notice returns the reason the last Start was refused, if any.
func (m *Machine) Notice() *Failure { return m.notice }

// Alert returns the unacknowledged operator alert, if any.
func (m *Machine) Alert() *Alert { return m.alert }

// AckAlert dismisses the operator alert. It never changes the state.
func (m *Machine) AckAlert() { m.alert = nil }

// Stream returns the open camera stream, or nil.
func (m *Machine) Stream() camera.Stream { return m.stream }
