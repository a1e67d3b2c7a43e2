package session

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"qrcheckin.klederson.com/internal/camera"
	"qrcheckin.klederson.com/internal/checkin"
	apperrors "qrcheckin.klederson.com/internal/errors"
	"qrcheckin.klederson.com/internal/nav"
	"qrcheckin.klederson.com/internal/profile"
	"qrcheckin.klederson.com/internal/signature"
)

const (
	testEvent = "20260314"
	testToken = "1234567890ABCDEF"
	validCode = "E1;" + testToken
)

// Fakes

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type delayed struct {
	at  time.Time
	seq int
	msg tea.Msg
}

type fakeScheduler struct {
	clock *fakeClock
	seq   int
}

func (s *fakeScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	s.seq++
	pending := delayed{at: s.clock.now.Add(d), seq: s.seq, msg: msg}
	return func() tea.Msg { return pending }
}

type fakeStream struct {
	ready  bool
	img    image.Image
	closes int
}

func (s *fakeStream) Ready() bool        { return s.ready }
func (s *fakeStream) Frame() image.Image { return s.img }
func (s *fakeStream) Close() error {
	s.closes++
	return nil
}

type fakeSource struct {
	err      error
	notReady bool
	streams  []*fakeStream
	ctxs     []context.Context
	videos   []profile.Video
}

func (s *fakeSource) Open(ctx context.Context, v profile.Video) (camera.Stream, error) {
	s.ctxs = append(s.ctxs, ctx)
	s.videos = append(s.videos, v)
	if s.err != nil {
		return nil, s.err
	}
	st := &fakeStream{ready: !s.notReady, img: image.NewRGBA(image.Rect(0, 0, 64, 48))}
	s.streams = append(s.streams, st)
	return st, nil
}

type fakeDecoder struct {
	results []string
	calls   int
}

func (d *fakeDecoder) Decode(pix []byte, width, height int) (string, bool) {
	d.calls++
	if len(d.results) == 0 {
		return "", false
	}
	r := d.results[0]
	d.results = d.results[1:]
	return r, r != ""
}

type verifyCall struct {
	ctx              context.Context
	id, eventID, sig string
}

type fakeVerifier struct {
	result checkin.Result
	calls  []verifyCall
}

func (v *fakeVerifier) CheckIn(ctx context.Context, id, eventID, sig string) checkin.Result {
	v.calls = append(v.calls, verifyCall{ctx: ctx, id: id, eventID: eventID, sig: sig})
	return v.result
}

type fakeCredentials struct {
	value string
	saved []string
}

func (c *fakeCredentials) Get(context.Context) string { return c.value }
func (c *fakeCredentials) Save(_ context.Context, v string) {
	c.value = v
	c.saved = append(c.saved, v)
}

type fakeSettings struct {
	p         profile.Profile
	persisted []profile.Profile
}

func (s *fakeSettings) Resolve(context.Context) profile.Profile { return s.p }
func (s *fakeSettings) Persist(_ context.Context, p profile.Profile) {
	s.persisted = append(s.persisted, p)
}

// Harness

type harness struct {
	t *testing.T
	m *Machine

	clock    *fakeClock
	camera   *fakeSource
	decoder  *fakeDecoder
	verifier *fakeVerifier
	creds    *fakeCredentials
	settings *fakeSettings

	queue       []delayed
	navs        []nav.NavigateMsg
	transitions []Transition

	hold func(tea.Msg) bool
	held []tea.Msg
}

func newHarness(t *testing.T, credential string) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		clock:    &fakeClock{now: time.Unix(1_700_000_000, 0)},
		camera:   &fakeSource{},
		decoder:  &fakeDecoder{},
		verifier: &fakeVerifier{},
		creds:    &fakeCredentials{value: credential},
		settings: &fakeSettings{p: profile.MustPreset(profile.Balanced)},
	}
	h.m = New(context.Background(), Deps{
		Camera:      h.camera,
		Decoder:     h.decoder,
		Verifier:    h.verifier,
		Credentials: h.creds,
		Settings:    h.settings,
		Scheduler:   &fakeScheduler{clock: h.clock},
		Clock:       h.clock,
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Observer:    func(tr Transition) { h.transitions = append(h.transitions, tr) },
	}, Options{
		EventID:        testEvent,
		RedirectDelay:  200 * time.Millisecond,
		RequestTimeout: 10 * time.Second,
	})
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.run(h.m.Update(msg))
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if h.hold != nil && h.hold(msg) {
		h.held = append(h.held, msg)
		return
	}
	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case delayed:
		h.queue = append(h.queue, msg)
	case nav.NavigateMsg:
		h.navs = append(h.navs, msg)
	default:
		h.send(msg)
	}
}

// advance moves the clock forward by d, firing due timers in order.
func (h *harness) advance(d time.Duration) {
	target := h.clock.now.Add(d)
	for {
		sort.SliceStable(h.queue, func(i, j int) bool {
			if h.queue[i].at.Equal(h.queue[j].at) {
				return h.queue[i].seq < h.queue[j].seq
			}
			return h.queue[i].at.Before(h.queue[j].at)
		})
		if len(h.queue) == 0 || h.queue[0].at.After(target) {
			break
		}
		next := h.queue[0]
		h.queue = h.queue[1:]
		h.clock.now = next.at
		h.send(next.msg)
	}
	h.clock.now = target
}

func (h *harness) release() {
	held := h.held
	h.held = nil
	h.hold = nil
	for _, msg := range held {
		h.send(msg)
	}
}

func (h *harness) requireState(want State) {
	h.t.Helper()
	if got := h.m.State(); got != want {
		h.t.Fatalf("state = %s, want %s", got, want)
	}
}

func (h *harness) stream(i int) *fakeStream {
	h.t.Helper()
	if i >= len(h.camera.streams) {
		h.t.Fatalf("stream %d was never opened (opened %d)", i, len(h.camera.streams))
	}
	return h.camera.streams[i]
}

// startAndScan starts a session and lets one decode happen.
func (h *harness) startAndScan(codes ...string) {
	h.t.Helper()
	h.decoder.results = append(h.decoder.results, codes...)
	h.send(StartMsg{})
	h.requireState(Scanning)
	h.advance(50 * time.Millisecond)
}

func attendeeResult(id string, checkedIn bool) checkin.Result {
	a := &checkin.Attendee{ID: id, EventID: testEvent, CheckIn: checkedIn}
	raw, _ := json.Marshal(a)
	a.Raw = raw
	outcome := checkin.Success
	if checkedIn {
		outcome = checkin.AlreadyCheckedIn
	}
	return checkin.Result{Outcome: outcome, Attendee: a, Status: 200}
}

// Tests

func TestStartRequiresCredential(t *testing.T) {
	h := newHarness(t, "")
	h.send(StartMsg{})
	h.requireState(Idle)
	if n := h.m.Notice(); n == nil || n.Code != apperrors.CodeMissingCredential {
		t.Fatalf("notice = %+v, want MissingCredential", n)
	}
	if len(h.camera.videos) != 0 {
		t.Fatal("camera must not open without a credential")
	}

	h.send(CredentialChangedMsg{Value: "operator"})
	if h.m.Notice() != nil {
		t.Fatal("credential edit must clear the notice")
	}
	if len(h.creds.saved) != 1 || h.creds.saved[0] != "operator" {
		t.Fatalf("saved = %v", h.creds.saved)
	}

	h.send(StartMsg{})
	h.requireState(Scanning)
	if v := h.camera.videos[0]; v != h.settings.p.Video {
		t.Fatalf("camera opened with %+v, want %+v", v, h.settings.p.Video)
	}
}

func TestNewLoadsPersistedState(t *testing.T) {
	h := newHarness(t, "stored")
	if h.m.Credential() != "stored" {
		t.Fatalf("credential = %q", h.m.Credential())
	}
	if h.m.Profile().Name != h.settings.p.Name {
		t.Fatalf("profile = %+v", h.m.Profile())
	}
	h.requireState(Idle)
	if h.m.Locked() {
		t.Fatal("idle machine must not be locked")
	}
}

func TestMalformedScanRecoversToIdle(t *testing.T) {
	h := newHarness(t, "operator")
	h.startAndScan("toolongidentifierstring;1234567890ABCDEF")

	h.requireState(RecoverableFailure)
	f := h.m.Failure()
	if f == nil || f.Code != apperrors.CodeFormat || f.Delay != 3000*time.Millisecond {
		t.Fatalf("failure = %+v", f)
	}
	if f.Detail != "toolongidentifierstring;1234567890ABCDEF" {
		t.Fatalf("detail = %q", f.Detail)
	}
	if !h.m.Locked() {
		t.Fatal("settings must stay locked during recovery")
	}
	if len(h.verifier.calls) != 0 {
		t.Fatal("malformed code must not be verified")
	}

	h.advance(2999 * time.Millisecond)
	h.requireState(RecoverableFailure)
	if h.stream(0).closes != 0 {
		t.Fatal("camera released before recovery")
	}

	h.advance(time.Millisecond)
	h.requireState(Idle)
	if h.stream(0).closes != 1 {
		t.Fatalf("closes = %d, want 1", h.stream(0).closes)
	}
	if h.m.Locked() || h.m.Failure() != nil || h.m.Stream() != nil {
		t.Fatal("idle machine must be unlocked with no failure or stream")
	}
}

func TestMissingCredentialMakesNoNetworkCall(t *testing.T) {
	tests := []struct {
		name    string
		cleared string
	}{
		{name: "empty", cleared: ""},
		{name: "spaces only", cleared: "   "},
		{name: "whitespace", cleared: " \t "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "operator")
			h.decoder.results = []string{validCode}
			h.send(StartMsg{})
			h.send(CredentialChangedMsg{Value: tt.cleared})
			h.advance(50 * time.Millisecond)

			h.requireState(RecoverableFailure)
			if f := h.m.Failure(); f.Code != apperrors.CodeMissingCredential || f.Delay != 2000*time.Millisecond {
				t.Fatalf("failure = %+v", f)
			}
			if len(h.verifier.calls) != 0 {
				t.Fatalf("verifier called %d times, want 0", len(h.verifier.calls))
			}

			h.advance(2000 * time.Millisecond)
			h.requireState(Idle)
			if h.stream(0).closes != 1 {
				t.Fatalf("closes = %d, want 1", h.stream(0).closes)
			}
		})
	}
}

func TestBlankCredentialRefusesStart(t *testing.T) {
	h := newHarness(t, "   ")
	h.decoder.results = []string{validCode}
	h.send(StartMsg{})
	h.advance(50 * time.Millisecond)

	h.requireState(Idle)
	if n := h.m.Notice(); n == nil || n.Code != apperrors.CodeMissingCredential {
		t.Fatalf("notice = %+v, want MissingCredential", n)
	}
	if len(h.verifier.calls) != 0 || len(h.camera.videos) != 0 {
		t.Fatalf("calls = %d, opens = %d, want none", len(h.verifier.calls), len(h.camera.videos))
	}
}

func TestCredentialIsTrimmedBeforeSigning(t *testing.T) {
	h := newHarness(t, "")
	h.send(CredentialChangedMsg{Value: "  operator \n"})
	if got := h.creds.value; got != "  operator \n" {
		t.Fatalf("saved = %q, want the raw input", got)
	}
	h.verifier.result = attendeeResult("E1", false)
	h.startAndScan(validCode)

	if len(h.verifier.calls) != 1 {
		t.Fatalf("verifier calls = %d, want 1", len(h.verifier.calls))
	}
	if got, want := h.verifier.calls[0].sig, signature.Sign("operator", testToken); got != want {
		t.Fatalf("signature = %q, want %q", got, want)
	}
}

func TestAlreadyCheckedIn(t *testing.T) {
	h := newHarness(t, "operator")
	h.verifier.result = attendeeResult("E1", true)
	h.startAndScan(validCode)

	h.requireState(RecoverableFailure)
	if f := h.m.Failure(); f.Code != apperrors.CodeAlreadyCheckedIn || f.Delay != 3000*time.Millisecond {
		t.Fatalf("failure = %+v", f)
	}
	alert := h.m.Alert()
	if alert == nil || alert.ID != "E1" || alert.Code != apperrors.CodeAlreadyCheckedIn {
		t.Fatalf("alert = %+v", alert)
	}

	h.advance(3000 * time.Millisecond)
	h.requireState(Idle)
	if h.stream(0).closes != 1 {
		t.Fatalf("closes = %d, want 1", h.stream(0).closes)
	}
	if h.m.Alert() == nil {
		t.Fatal("recovery must not dismiss the alert")
	}

	h.m.AckAlert()
	h.requireState(Idle)
	if h.m.Alert() != nil {
		t.Fatal("alert not dismissed")
	}
}

func TestSuccessHandsOff(t *testing.T) {
	h := newHarness(t, "operator")
	h.verifier.result = attendeeResult("E1", false)
	h.startAndScan(validCode)

	h.requireState(Succeeded)
	if len(h.verifier.calls) != 1 {
		t.Fatalf("verifier calls = %d, want 1", len(h.verifier.calls))
	}
	call := h.verifier.calls[0]
	wantSig := signature.Sign("operator", testToken)
	if call.id != "E1" || call.eventID != testEvent || call.sig != wantSig {
		t.Fatalf("call = %+v, want id E1 event %s sig %s", call, testEvent, wantSig)
	}
	if _, ok := call.ctx.Deadline(); !ok {
		t.Fatal("verification must carry a deadline")
	}

	h.advance(199 * time.Millisecond)
	if len(h.navs) != 0 {
		t.Fatal("hand-off before redirect delay")
	}
	h.advance(time.Millisecond)
	if len(h.navs) != 1 {
		t.Fatalf("hand-offs = %d, want 1", len(h.navs))
	}

	route, values, err := nav.Parse(h.navs[0].Path)
	if err != nil || route != nav.Confirm {
		t.Fatalf("route = %q, err = %v", route, err)
	}
	handoff, err := nav.ParseHandoff(values)
	if err != nil {
		t.Fatalf("ParseHandoff: %v", err)
	}
	var rec checkin.Attendee
	if err := json.Unmarshal(handoff.Record, &rec); err != nil || rec.ID != "E1" {
		t.Fatalf("record = %s (%v)", handoff.Record, err)
	}
	if handoff.Signature != wantSig {
		t.Fatalf("signature = %q, want %q", handoff.Signature, wantSig)
	}
	if h.stream(0).closes != 1 {
		t.Fatalf("closes = %d, want 1", h.stream(0).closes)
	}

	// Succeeded is terminal.
	h.send(handoffMsg{epoch: h.m.epoch})
	h.send(StartMsg{})
	h.send(StopMsg{})
	h.advance(5 * time.Second)
	if len(h.navs) != 1 || h.m.State() != Succeeded || h.stream(0).closes != 1 {
		t.Fatalf("terminal state disturbed: navs=%d state=%s closes=%d", len(h.navs), h.m.State(), h.stream(0).closes)
	}

	var succeeded int
	var seq []string
	for _, tr := range h.transitions {
		seq = append(seq, tr.To.String())
		if tr.To == Succeeded {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Fatalf("reached Succeeded %d times", succeeded)
	}
	if got := strings.Join(seq, ","); got != "Acquiring,Scanning,Detected,Verifying,Succeeded" {
		t.Fatalf("transitions = %s", got)
	}
}

func TestVerifyFailureOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		result  checkin.Result
		code    apperrors.Code
		delay   time.Duration
		status  int
		message string
	}{
		{
			name:    "not found",
			result:  checkin.Result{Outcome: checkin.NotFound, Status: 404, Message: "查無此人"},
			code:    apperrors.CodeNotFound,
			delay:   3000 * time.Millisecond,
			status:  404,
			message: "查無此人",
		},
		{
			name:   "api error",
			result: checkin.Result{Outcome: checkin.APIError, Status: 500},
			code:   apperrors.CodeAPI,
			delay:  2000 * time.Millisecond,
			status: 500,
		},
		{
			name: "network error",
			result: checkin.Result{
				Outcome: checkin.NetworkError,
				Err:     apperrors.Wrap(apperrors.CodeNetwork, "request failed", errors.New("connection refused")),
			},
			code:  apperrors.CodeNetwork,
			delay: 2000 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "operator")
			h.verifier.result = tt.result
			h.startAndScan(validCode)

			h.requireState(RecoverableFailure)
			f := h.m.Failure()
			if f.Code != tt.code || f.Delay != tt.delay || f.Status != tt.status || f.Message != tt.message {
				t.Fatalf("failure = %+v", f)
			}
			if tt.code == apperrors.CodeNetwork && f.Detail != "connection refused" {
				t.Fatalf("detail = %q", f.Detail)
			}
			if h.m.Alert() != nil {
				t.Fatal("only already-checked-in raises an alert")
			}

			h.advance(tt.delay - time.Millisecond)
			h.requireState(RecoverableFailure)
			h.advance(time.Millisecond)
			h.requireState(Idle)
			if h.stream(0).closes != 1 {
				t.Fatalf("closes = %d, want 1", h.stream(0).closes)
			}
		})
	}
}

func TestCameraErrorRecovers(t *testing.T) {
	h := newHarness(t, "operator")
	h.camera.err = apperrors.New(apperrors.CodeCamera, "permission denied")
	h.send(StartMsg{})

	h.requireState(RecoverableFailure)
	f := h.m.Failure()
	if f.Code != apperrors.CodeCamera || f.Delay != 2000*time.Millisecond {
		t.Fatalf("failure = %+v", f)
	}
	if !strings.Contains(f.Detail, "permission denied") {
		t.Fatalf("detail = %q", f.Detail)
	}
	h.advance(2000 * time.Millisecond)
	h.requireState(Idle)
}

func TestSamplingCadence(t *testing.T) {
	h := newHarness(t, "operator")
	h.send(StartMsg{})
	// Balanced: 20 fps ticks, 300 ms cadence. Samples at 50, 350, 650, 950.
	h.advance(time.Second)
	if h.decoder.calls != 4 {
		t.Fatalf("decodes = %d, want 4", h.decoder.calls)
	}
	h.requireState(Scanning)
}

func TestSamplingWaitsForReadyStream(t *testing.T) {
	h := newHarness(t, "operator")
	h.camera.notReady = true
	h.send(StartMsg{})
	h.advance(time.Second)
	if h.decoder.calls != 0 {
		t.Fatalf("decodes = %d, want 0", h.decoder.calls)
	}

	h.stream(0).ready = true
	h.advance(50 * time.Millisecond)
	if h.decoder.calls != 1 {
		t.Fatalf("decodes = %d, want 1", h.decoder.calls)
	}
}

func TestStaleRecoveryTimerIsNoop(t *testing.T) {
	h := newHarness(t, "operator")
	h.startAndScan("bad")
	h.requireState(RecoverableFailure)

	h.send(StopMsg{})
	h.requireState(Idle)
	if h.stream(0).closes != 1 {
		t.Fatalf("closes = %d, want 1", h.stream(0).closes)
	}

	h.send(StartMsg{})
	h.requireState(Scanning)
	h.advance(3 * time.Second)
	h.requireState(Scanning)
	if h.stream(0).closes != 1 {
		t.Fatalf("stale timer re-released first stream: closes = %d", h.stream(0).closes)
	}
	if h.stream(1).closes != 0 {
		t.Fatal("stale timer released the new stream")
	}

	h.send(recoverMsg{epoch: 0})
	h.requireState(Scanning)
}

func TestStopCancelsVerification(t *testing.T) {
	h := newHarness(t, "operator")
	h.verifier.result = attendeeResult("E1", false)
	h.hold = func(msg tea.Msg) bool {
		_, ok := msg.(verifiedMsg)
		return ok
	}
	h.startAndScan(validCode)
	h.requireState(Verifying)
	if !h.m.Locked() {
		t.Fatal("settings must be locked while verifying")
	}

	h.send(StopMsg{})
	h.requireState(Idle)
	if err := h.verifier.calls[0].ctx.Err(); !errors.Is(err, context.Canceled) {
		t.Fatalf("request ctx err = %v, want Canceled", err)
	}
	if h.stream(0).closes != 1 {
		t.Fatalf("closes = %d, want 1", h.stream(0).closes)
	}

	h.release()
	h.advance(time.Second)
	h.requireState(Idle)
	if len(h.navs) != 0 {
		t.Fatal("late result must not hand off")
	}
}

func TestCameraOpenedAfterStopIsClosed(t *testing.T) {
	h := newHarness(t, "operator")
	h.hold = func(msg tea.Msg) bool {
		_, ok := msg.(cameraOpenedMsg)
		return ok
	}
	h.send(StartMsg{})
	h.requireState(Acquiring)
	if !h.m.Locked() {
		t.Fatal("settings must be locked while acquiring")
	}

	h.send(StopMsg{})
	h.requireState(Idle)
	if h.camera.ctxs[0].Err() == nil {
		t.Fatal("pending open must be cancelled")
	}

	h.release()
	h.requireState(Idle)
	if h.stream(0).closes != 1 {
		t.Fatalf("late stream closes = %d, want 1", h.stream(0).closes)
	}
	if h.m.Stream() != nil {
		t.Fatal("late stream must not be adopted")
	}
}

func TestSettingsLock(t *testing.T) {
	h := newHarness(t, "operator")
	fast := profile.MustPreset(profile.HighPerformance)

	if err := h.m.ApplySettings(fast); err != nil {
		t.Fatalf("ApplySettings in Idle: %v", err)
	}
	if len(h.settings.persisted) != 1 || h.m.Profile().ScanSpeed != profile.LevelFast {
		t.Fatal("settings not applied")
	}

	bad := fast
	bad.ScanScale = 0
	if err := h.m.ApplySettings(bad); err == nil {
		t.Fatal("invalid profile accepted")
	}

	h.send(StartMsg{})
	h.requireState(Scanning)
	if !errors.Is(h.m.ApplySettings(profile.MustPreset(profile.LowEnd)), ErrLocked) {
		t.Fatal("settings must be locked while scanning")
	}
	h.send(SettingsSavedMsg{Profile: profile.MustPreset(profile.LowEnd)})
	if h.m.Profile().ScanSpeed != profile.LevelFast || len(h.settings.persisted) != 1 {
		t.Fatal("locked settings changed")
	}

	h.send(StopMsg{})
	h.send(SettingsSavedMsg{Profile: profile.MustPreset(profile.LowEnd)})
	if h.m.Profile().ScanSpeed != profile.LevelPowerSaver {
		t.Fatal("settings must unlock back in Idle")
	}
}

func TestStartIgnoredWhileActive(t *testing.T) {
	h := newHarness(t, "operator")
	h.send(StartMsg{})
	h.send(StartMsg{})
	if len(h.camera.videos) != 1 {
		t.Fatalf("camera opened %d times, want 1", len(h.camera.videos))
	}
	h.send(StopMsg{})
	h.send(StopMsg{})
	if h.stream(0).closes != 1 {
		t.Fatalf("closes = %d, want 1", h.stream(0).closes)
	}
}

func TestCloseReleasesCamera(t *testing.T) {
	h := newHarness(t, "operator")
	h.send(StartMsg{})
	h.m.Close()
	h.m.Close()
	if h.stream(0).closes != 1 {
		t.Fatalf("closes = %d, want 1", h.stream(0).closes)
	}
	h.advance(time.Second)
	if h.decoder.calls != 0 {
		t.Fatal("ticks must stop after Close")
	}
}

func TestReplacementIgnoresClosedMachineMessages(t *testing.T) {
	old := newHarness(t, "operator")
	old.hold = func(msg tea.Msg) bool {
		_, ok := msg.(cameraOpenedMsg)
		return ok
	}
	old.send(StartMsg{})
	old.m.Close()

	h := newHarness(t, "operator")
	h.hold = old.hold
	h.send(StartMsg{})
	h.requireState(Acquiring)

	for _, msg := range old.held {
		h.send(msg)
	}
	h.requireState(Acquiring)
	if old.stream(0).closes != 1 {
		t.Fatalf("old stream closes = %d, want 1", old.stream(0).closes)
	}

	h.release()
	h.requireState(Scanning)
	if h.m.Stream() != h.stream(0) {
		t.Fatal("replacement must adopt its own stream")
	}
}
