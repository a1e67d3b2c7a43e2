// Package nav carries screen changes between the scan session and the app.
package nav

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Route names a screen.
type Route string

const (
	Scanner      Route = "scanner"
	Confirm      Route = "confirm"
	DirectInput  Route = "directinput"
	AdminActions Route = "adminactions"
)

// ErrMissingData is returned when a confirm path carries no record.
var ErrMissingData = errors.New("missing data parameter")

// NavigateMsg asks the app to switch screens. Path is the route optionally
// followed by a query string.
type NavigateMsg struct {
	Path string
}

// To returns a NavigateMsg for a bare route.
func To(r Route) NavigateMsg {
	return NavigateMsg{Path: string(r)}
}

// Handoff is what the scanner passes to the confirmation screen.
type Handoff struct {
	Record    json.RawMessage // Attendee record exactly as the webhook returned it
	Signature string          // Signature the record was fetched with
}

// ConfirmPath encodes h as confirm?data=...&deAuthSignature=...
func ConfirmPath(h Handoff) string {
	return string(Confirm) +
		"?data=" + url.QueryEscape(string(h.Record)) +
		"&deAuthSignature=" + url.QueryEscape(h.Signature)
}

// Parse splits a path into its route and query.
func Parse(path string) (Route, url.Values, error) {
	route, query, _ := strings.Cut(path, "?")
	values, err := url.ParseQuery(query)
	if err != nil {
		return Route(route), nil, fmt.Errorf("parse query: %w", err)
	}
	return Route(route), values, nil
}

// ParseHandoff decodes the query of a confirm path. A missing signature is
// not an error here; the confirmation screen reports it when used.
func ParseHandoff(values url.Values) (Handoff, error) {
	data := values.Get("data")
	if data == "" {
		return Handoff{}, ErrMissingData
	}
	if !json.Valid([]byte(data)) {
		return Handoff{}, errors.New("data parameter is not JSON")
	}
	return Handoff{
		Record:    json.RawMessage(data),
		Signature: values.Get("deAuthSignature"),
	}, nil
}
