package i18n

import "golang.org/x/text/message"

func init() {
	lang := English

	// Scanner
	message.SetString(lang, "scan.title", "QR Check-In Scanner")
	message.SetString(lang, "scan.credential", "DEAuth credential")
	message.SetString(lang, "scan.idle", "Press [s] to start scanning")
	message.SetString(lang, "scan.acquiring", "Opening camera...")
	message.SetString(lang, "scan.scanning", "Scanning for a QR code...")
	message.SetString(lang, "scan.detected", "✓ Scanned ID: %s")
	message.SetString(lang, "scan.verifying", "Calling check-in API...")
	message.SetString(lang, "scan.succeeded", "✓ Check-in accepted, opening confirmation...")
	message.SetString(lang, "scan.recovering", "Ready to scan again in %s")
	message.SetString(lang, "scan.locked", "Settings are locked while scanning")
	message.SetString(lang, "scan.settings_saved", "Settings saved")

	message.SetString(lang, "error.format", "✗ Invalid code, expected up to 10 characters, a semicolon and a 16 character alphanumeric token. Scanned: %s")
	message.SetString(lang, "error.format.hint", "Invalid format, start scanning again")
	message.SetString(lang, "error.credential", "Enter the DEAuth credential first")
	message.SetString(lang, "error.credential.hint", "Enter the credential, then scan again")
	message.SetString(lang, "error.already", "✗ Already checked in")
	message.SetString(lang, "error.already.hint", "Already checked in, scan another QR code")
	message.SetString(lang, "error.not_found", "✗ %s")
	message.SetString(lang, "error.api", "API call failed (HTTP %d)")
	message.SetString(lang, "error.network", "✗ Network error: %s")
	message.SetString(lang, "error.network.hint", "Network error, start again")
	message.SetString(lang, "error.camera", "Cannot access camera: %s")

	// Settings
	message.SetString(lang, "settings.title", "Scanner settings")
	message.SetString(lang, "settings.profile", "Profile")
	message.SetString(lang, "settings.resolution", "Resolution")
	message.SetString(lang, "settings.fps", "Frame rate")
	message.SetString(lang, "settings.speed", "Scan speed")
	message.SetString(lang, "settings.scale", "Decode scale")
	message.SetString(lang, "settings.region", "Scan region")
	message.SetString(lang, "settings.speed.1", "Fast")
	message.SetString(lang, "settings.speed.2", "Normal")
	message.SetString(lang, "settings.speed.3", "Power saver")

	// Confirm
	message.SetString(lang, "confirm.title", "Confirm check-in")
	message.SetString(lang, "confirm.loading", "Loading attendee...")
	message.SetString(lang, "confirm.no_data", "No check-in data")
	message.SetString(lang, "confirm.invalid", "Invalid data, cannot check in")
	message.SetString(lang, "confirm.no_signature", "Missing credential, scan again")
	message.SetString(lang, "confirm.prompt", "Payment collected? Allow check-in [y/n]")
	message.SetString(lang, "confirm.processing", "Processing...")
	message.SetString(lang, "confirm.done", "Check-in confirmed!")
	message.SetString(lang, "confirm.failed", "Check-in failed: %s")
	message.SetString(lang, "confirm.network", "Network error, check-in failed")
	message.SetString(lang, "confirm.retry", "[y] retry [n] back")
	message.SetString(lang, "field.id", "ID")
	message.SetString(lang, "field.chinese_name", "Chinese name")
	message.SetString(lang, "field.english_name", "English name")
	message.SetString(lang, "field.type", "Type")
	message.SetString(lang, "field.department", "Department")
	message.SetString(lang, "field.vegetarian", "Vegetarian")
	message.SetString(lang, "field.lottery", "Lottery")
	message.SetString(lang, "badge.yes", "Yes")
	message.SetString(lang, "badge.no", "No")

	// Direct input
	message.SetString(lang, "direct.title", "Direct check-in")
	message.SetString(lang, "direct.prompt", "Employee ID")
	message.SetString(lang, "direct.empty", "Enter an employee ID")
	message.SetString(lang, "direct.missing", "Missing credential, enter the DEAuth credential on the scanner screen")
	message.SetString(lang, "direct.loading", "⌛ Looking up attendee...")
	message.SetString(lang, "direct.already", "✗ Already checked in")
	message.SetString(lang, "direct.success", "✓ Found, opening confirmation...")
	message.SetString(lang, "direct.network", "✗ Network error: %s")

	// Admin
	message.SetString(lang, "admin.title", "Admin actions")
	message.SetString(lang, "admin.no_show", "Send no-show list")
	message.SetString(lang, "admin.summary", "Send attendance summary")
	message.SetString(lang, "admin.confirm.no_show", "Send the no-show list? [y/n]")
	message.SetString(lang, "admin.confirm.summary", "Send the attendance summary? [y/n]")
	message.SetString(lang, "admin.missing", "✗ Missing DEAuth credential, enter it on the scanner screen")
	message.SetString(lang, "admin.calling", "⌛ Calling API...")
	message.SetString(lang, "admin.ok", "✓ Done")
	message.SetString(lang, "admin.failed", "✗ Failed")
	message.SetString(lang, "admin.network", "✗ Network error")

	// Chrome
	message.SetString(lang, "menu.scanner", "Scanner")
	message.SetString(lang, "menu.direct", "Direct")
	message.SetString(lang, "menu.admin", "Admin")
	message.SetString(lang, "menu.demo", "DEMO")
	message.SetString(lang, "history.title", "Recent")
	message.SetString(lang, "history.empty", "No scans yet")
	message.SetString(lang, "alert.ack", "Press [enter] to dismiss")
	message.SetString(lang, "help.scanner", "[s]start/stop [tab]focus [↑↓←→]settings [ctrl+s]save [enter]ack [F2]direct [F3]admin [q]quit")
	message.SetString(lang, "help.confirm", "[y]confirm [n/esc]back")
	message.SetString(lang, "help.direct", "[enter]look up [esc]back")
	message.SetString(lang, "help.admin", "[1]no-show list [2]summary [esc]back")
}
