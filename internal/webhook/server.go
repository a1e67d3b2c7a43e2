// Package webhook is a local stand-in for the remote check-in webhooks,
// used by demo mode and the serve-mock command.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"qrcheckin.klederson.com/internal/checkin"
	"qrcheckin.klederson.com/internal/config"
	"qrcheckin.klederson.com/internal/signature"
)

// Server answers the check-in endpoints from a Roster.
type Server struct {
	roster     *Roster
	credential string
	token      string
	log        *slog.Logger
}

// NewServer creates a server that accepts requests signed with credential
// and token.
func NewServer(roster *Roster, credential, token string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{roster: roster, credential: credential, token: token, log: log}
}

// Endpoints returns the endpoint set for a server listening at base.
func Endpoints(base string) config.Endpoints {
	return config.Endpoints{
		CheckIn:    base + "/webhook/checkin",
		Confirm:    base + "/webhook/confirm",
		Lookup:     base + "/webhook/lookup",
		NoShowList: base + "/webhook/send-no-show-list",
		Summary:    base + "/webhook/send-summary",
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/webhook").Subrouter()
	api.Use(s.requireSignature)
	api.HandleFunc("/checkin", s.handleCheckIn).Methods(http.MethodPost)
	api.HandleFunc("/lookup", s.handleCheckIn).Methods(http.MethodPost)
	api.HandleFunc("/confirm", s.handleConfirm).Methods(http.MethodPost)
	api.HandleFunc("/send-no-show-list", s.handleNoShow).Methods(http.MethodPost)
	api.HandleFunc("/send-summary", s.handleSummary).Methods(http.MethodPost)
	return r
}

// Start listens on addr and serves in the background. It returns the base
// URL and a shutdown function.
func (s *Server) Start(addr string) (string, func(context.Context) error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("demo webhook stopped", "error", err)
		}
	}()
	base := "http://" + ln.Addr().String()
	s.log.Info("demo webhook listening", "url", base)
	return base, srv.Shutdown, nil
}

// Serve runs until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	_, shutdown, err := s.Start(addr)
	if err != nil {
		return err
	}
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("demo webhook request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get(checkin.HeaderRequestID),
			"elapsed", time.Since(start),
		)
	})
}

// requireSignature accepts the signature of the configured credential and
// token, the same value the kiosk computes.
func (s *Server) requireSignature(next http.Handler) http.Handler {
	want := signature.Sign(s.credential, s.token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(checkin.HeaderAuth) != want {
			writeMessage(w, http.StatusUnauthorized, "invalid DEAuth signature")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type idRequest struct {
	ID      string `json:"ID"`
	EventID string `json:"EventID"`
}

func decodeID(w http.ResponseWriter, r *http.Request) (idRequest, bool) {
	var req idRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeMessage(w, http.StatusBadRequest, "request must carry an ID")
		return req, false
	}
	return req, true
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeID(w, r)
	if !ok {
		return
	}
	if req.EventID != "" && req.EventID != s.roster.EventID() {
		writeMessage(w, http.StatusNotFound, "查無此活動: "+req.EventID)
		return
	}
	a, ok := s.roster.Get(req.ID)
	if !ok {
		writeMessage(w, http.StatusNotFound, "查無此人員: "+req.ID)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeID(w, r)
	if !ok {
		return
	}
	if !s.roster.MarkCheckedIn(req.ID) {
		writeMessage(w, http.StatusNotFound, "查無此人員: "+req.ID)
		return
	}
	a, _ := s.roster.Get(req.ID)
	s.log.Info("demo attendee checked in", "id", a.ID)
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleNoShow(w http.ResponseWriter, r *http.Request) {
	noShows := s.roster.NoShows()
	ids := make([]string, len(noShows))
	for i, a := range noShows {
		ids[i] = a.ID
	}
	writeJSON(w, http.StatusOK, map[string]any{"Sent": len(ids), "IDs": ids})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	total, checkedIn := s.roster.Counts()
	writeJSON(w, http.StatusOK, map[string]any{
		"EventID":   s.roster.EventID(),
		"Total":     total,
		"CheckedIn": checkedIn,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"Message": msg})
}
