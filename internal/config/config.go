package config

import "time"

const (
	// Recovery windows after a failed scan
	FormatErrorDelay       = 3000 * time.Millisecond // Malformed QR payload
	AlreadyCheckedInDelay  = 3000 * time.Millisecond // Attendee already checked in
	NotFoundDelay          = 3000 * time.Millisecond // Webhook answered 404
	MissingCredentialDelay = 2000 * time.Millisecond // DEAuth field empty at verify time
	APIErrorDelay          = 2000 * time.Millisecond // Any other non-2xx
	NetworkErrorDelay      = 2000 * time.Millisecond // Transport failure or timeout
	CameraErrorDelay       = 2000 * time.Millisecond // Camera denied or unavailable

	// Confirmation screen
	ConfirmLoadDelay = 1 * time.Second // Loading spinner before attendee details
	BackDelay        = 1 * time.Second // Pause before returning to the scanner

	// Direct input screen
	DirectRedirectDelay = 2 * time.Second // Success message before hand-off
	DirectResetDelay    = 3 * time.Second // Already-checked-in message lifetime

	// Viewfinder
	PreviewFPS    = 10  // ASCII preview refresh rate
	AspectRatio   = 0.5 // Terminal char aspect correction (chars are ~2:1 tall)
	ScanlinePerS  = 0.5 // Scan line sweeps per second over the region
	HistoryLength = 8   // Recent outcomes shown on the scanner screen

	// Camera
	CameraWaitTimeout = 2 // Seconds to wait for a V4L2 frame before retrying
	CameraBuffers     = 4 // V4L2 mmap buffers

	// App
	AppName    = "QR-CHECKIN"
	AppVersion = "1.0"
)
