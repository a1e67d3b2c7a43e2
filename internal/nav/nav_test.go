package nav

import (
	"errors"
	"strings"
	"testing"
)

func TestConfirmPathRoundTrip(t *testing.T) {
	h := Handoff{
		Record:    []byte(`{"ID":"A1&2","ChineseName":"王小明","Note":"a b+c"}`),
		Signature: "ZGVtbzhLeDltTjRwUTd2UjJhWXU=",
	}
	path := ConfirmPath(h)
	if !strings.HasPrefix(path, "confirm?data=") {
		t.Fatalf("path = %q", path)
	}
	if strings.Contains(path, "王") || strings.Contains(path, " ") {
		t.Fatalf("path is not escaped: %q", path)
	}

	route, values, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if route != Confirm {
		t.Fatalf("route = %q", route)
	}
	got, err := ParseHandoff(values)
	if err != nil {
		t.Fatalf("ParseHandoff: %v", err)
	}
	if string(got.Record) != string(h.Record) || got.Signature != h.Signature {
		t.Fatalf("handoff = %+v, want %+v", got, h)
	}
}

func TestParseBareRoute(t *testing.T) {
	route, values, err := Parse(string(Scanner))
	if err != nil || route != Scanner || len(values) != 0 {
		t.Fatalf("Parse(scanner) = %q %v %v", route, values, err)
	}
	if To(AdminActions).Path != "adminactions" {
		t.Fatal("unexpected route path")
	}
}

func TestParseHandoffErrors(t *testing.T) {
	_, values, _ := Parse("confirm?deAuthSignature=abc")
	if _, err := ParseHandoff(values); !errors.Is(err, ErrMissingData) {
		t.Fatalf("missing data = %v", err)
	}
	_, values, _ = Parse("confirm?data=%7Bnot-json")
	if _, err := ParseHandoff(values); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	_, values, _ = Parse(`confirm?data=%7B%7D`)
	h, err := ParseHandoff(values)
	if err != nil || h.Signature != "" {
		t.Fatalf("no signature = %+v %v", h, err)
	}
	if _, _, err := Parse("confirm?data=%zz"); err == nil {
		t.Fatal("expected query parse error")
	}
}
