package webhook

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"qrcheckin.klederson.com/internal/checkin"
	"qrcheckin.klederson.com/internal/signature"
)

const (
	testCredential = "demo"
	testToken      = "8Kx9mN4pQ7vR2aYu"
	testEvent      = "20260314"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (*Roster, *checkin.Client, string) {
	t.Helper()
	roster := DemoRoster(testEvent)
	srv := httptest.NewServer(NewServer(roster, testCredential, testToken, discardLogger()).Handler())
	t.Cleanup(srv.Close)
	return roster, checkin.New(Endpoints(srv.URL), time.Second, discardLogger()), srv.URL
}

func TestCheckInFlow(t *testing.T) {
	roster, c, _ := newTestServer(t)
	ctx := context.Background()
	sig := signature.Sign(testCredential, testToken)

	res := c.CheckIn(ctx, "A1024", testEvent, sig)
	if res.Outcome != checkin.Success {
		t.Fatalf("first check-in = %v (%v)", res.Outcome, res.Err)
	}
	if res.Attendee.ChineseName != "王小明" || res.Attendee.EventID != testEvent {
		t.Fatalf("attendee = %+v", res.Attendee)
	}

	if res := c.Confirm(ctx, "A1024", testEvent, sig); !res.OK() {
		t.Fatalf("confirm = %v (%v)", res.Outcome, res.Err)
	}
	if a, _ := roster.Get("A1024"); !a.CheckIn {
		t.Fatal("confirm did not mark attendee")
	}

	if res := c.CheckIn(ctx, "A1024", testEvent, sig); res.Outcome != checkin.AlreadyCheckedIn {
		t.Fatalf("second check-in = %v", res.Outcome)
	}
}

func TestCheckInErrors(t *testing.T) {
	_, c, _ := newTestServer(t)
	ctx := context.Background()
	sig := signature.Sign(testCredential, testToken)

	res := c.CheckIn(ctx, "Z9999", testEvent, sig)
	if res.Outcome != checkin.NotFound || !strings.Contains(res.Message, "Z9999") {
		t.Fatalf("unknown id = %+v", res)
	}

	res = c.CheckIn(ctx, "A1024", "19990101", sig)
	if res.Outcome != checkin.NotFound {
		t.Fatalf("wrong event = %v", res.Outcome)
	}

	res = c.CheckIn(ctx, "A1024", testEvent, signature.Sign("wrong", testToken))
	if res.Outcome != checkin.APIError || res.Status != http.StatusUnauthorized {
		t.Fatalf("bad signature = %v %d", res.Outcome, res.Status)
	}
}

func TestLookupAndAdmin(t *testing.T) {
	_, c, _ := newTestServer(t)
	ctx := context.Background()
	sig := signature.Sign(testCredential, testToken)

	if res := c.Lookup(ctx, "B0007", sig); res.Outcome != checkin.AlreadyCheckedIn {
		t.Fatalf("lookup = %v", res.Outcome)
	}

	res := c.SendNoShowList(ctx, sig)
	if !res.OK() || res.Payload != `{"IDs":["A1024","A2048","C0311"],"Sent":3}` {
		t.Fatalf("no-show = %+v", res)
	}
	res = c.SendSummary(ctx, sig)
	if !res.OK() || res.Payload != `{"CheckedIn":1,"EventID":"20260314","Total":4}` {
		t.Fatalf("summary = %+v", res)
	}
}

func TestHealthNeedsNoSignature(t *testing.T) {
	_, _, base := newTestServer(t)
	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestBadRequest(t *testing.T) {
	_, _, base := newTestServer(t)
	req, _ := http.NewRequest(http.MethodPost, base+"/webhook/checkin", strings.NewReader(`{}`))
	req.Header.Set(checkin.HeaderAuth, signature.Sign(testCredential, testToken))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStartAndShutdown(t *testing.T) {
	s := NewServer(DemoRoster(testEvent), testCredential, testToken, discardLogger())
	base, shutdown, err := s.Start("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
