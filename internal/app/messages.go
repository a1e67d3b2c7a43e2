package app

import "qrcheckin.klederson.com/internal/checkin"

// TickMsg triggers a viewfinder refresh.
type TickMsg struct{}

// Screen messages carry the sequence number of the screen visit that
// issued them; a message from an earlier visit is ignored.

type backMsg struct {
	seq int
}

type confirmLoadedMsg struct {
	seq int
}

type confirmDoneMsg struct {
	seq    int
	result checkin.Result
}

type directResultMsg struct {
	seq       int
	signature string
	result    checkin.Result
}

type directClearMsg struct {
	seq int
}

type directHandoffMsg struct {
	seq  int
	path string
}

type adminResultMsg struct {
	seq    int
	action adminAction
	result checkin.Result
}
