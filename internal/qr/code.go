package qr

import "regexp"

// codePattern is up to ten arbitrary characters, a ';', then a 16 character
// alphanumeric token.
var codePattern = regexp.MustCompile(`^(.{1,10});([A-Za-z0-9]{16})$`)

// Code is the result of validating decoded text. ID and Token are only set
// when Valid is true.
type Code struct {
	Valid bool
	ID    string
	Token string
	Raw   string
}

// Parse validates raw against the attendee code grammar.
func Parse(raw string) Code {
	m := codePattern.FindStringSubmatch(raw)
	if m == nil {
		return Code{Raw: raw}
	}
	return Code{Valid: true, ID: m[1], Token: m[2], Raw: raw}
}
