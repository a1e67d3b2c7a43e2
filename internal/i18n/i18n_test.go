package i18n

import (
	"testing"

	"golang.org/x/text/message"
)

var catalogKeys = []string{
	"scan.title", "scan.credential", "scan.idle", "scan.acquiring",
	"scan.scanning", "scan.detected", "scan.verifying", "scan.succeeded",
	"scan.recovering", "scan.locked", "scan.settings_saved", "error.format",
	"error.format.hint", "error.credential", "error.credential.hint", "error.already",
	"error.already.hint", "error.not_found", "error.api", "error.network",
	"error.network.hint", "error.camera", "settings.title", "settings.profile",
	"settings.resolution", "settings.fps", "settings.speed", "settings.scale",
	"settings.region", "settings.speed.1", "settings.speed.2", "settings.speed.3",
	"confirm.title", "confirm.loading", "confirm.no_data", "confirm.invalid",
	"confirm.no_signature", "confirm.prompt", "confirm.processing", "confirm.done",
	"confirm.failed", "confirm.network", "confirm.retry", "field.id", "field.chinese_name",
	"field.english_name", "field.type", "field.department", "field.vegetarian",
	"field.lottery", "badge.yes", "badge.no", "direct.title",
	"direct.prompt", "direct.empty", "direct.missing", "direct.loading",
	"direct.already", "direct.success", "direct.network", "admin.title",
	"admin.no_show", "admin.summary", "admin.confirm.no_show", "admin.confirm.summary",
	"admin.missing", "admin.calling", "admin.ok", "admin.failed",
	"admin.network", "menu.scanner", "menu.direct", "menu.admin",
	"menu.demo", "history.title", "history.empty", "alert.ack",
	"help.scanner", "help.confirm", "help.direct", "help.admin",
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "zh-TW"},
		{"zh-TW", "zh-TW"},
		{"zh-Hant-TW", "zh-TW"},
		{"en", "en-US"},
		{"en-US", "en-US"},
		{"EN_us", "en-US"},
		{"fr", "zh-TW"},
		{"not a tag", "zh-TW"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.in).String(); got != tt.want {
			t.Fatalf("Resolve(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPrinterFormats(t *testing.T) {
	if got := Printer("en-US").Sprintf("error.api", 503); got != "API call failed (HTTP 503)" {
		t.Fatalf("en error.api = %q", got)
	}
	if got := Printer("zh-TW").Sprintf("error.api", 404); got != "API呼叫失敗 (HTTP 404)" {
		t.Fatalf("zh error.api = %q", got)
	}
	if got := Printer("").Sprintf("scan.detected", "A1"); got != "✓ 掃描成功 ID: A1" {
		t.Fatalf("default scan.detected = %q", got)
	}
}

func TestCatalogComplete(t *testing.T) {
	for _, tag := range Supported() {
		p := message.NewPrinter(tag)
		for _, key := range catalogKeys {
			if got := p.Sprintf(key); got == key {
				t.Fatalf("%s: missing message %q", tag, key)
			}
		}
	}
}

func TestSupportedIsCopy(t *testing.T) {
	tags := Supported()
	tags[0] = English
	if Supported()[0] != TraditionalChinese {
		t.Fatalf("Supported leaked its backing array: %v", Supported())
	}
}
