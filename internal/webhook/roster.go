package webhook

import (
	"sort"
	"sync"

	"qrcheckin.klederson.com/internal/checkin"
)

// Roster is a thread-safe in-memory attendee list.
type Roster struct {
	mu        sync.RWMutex
	eventID   string
	attendees map[string]*checkin.Attendee
}

// NewRoster creates a roster for eventID holding attendees.
func NewRoster(eventID string, attendees ...checkin.Attendee) *Roster {
	r := &Roster{
		eventID:   eventID,
		attendees: make(map[string]*checkin.Attendee, len(attendees)),
	}
	for _, a := range attendees {
		a.EventID = eventID
		a.Raw = nil
		cp := a
		r.attendees[a.ID] = &cp
	}
	return r
}

// DemoRoster returns the roster used by demo mode. B0007 is already
// checked in.
func DemoRoster(eventID string) *Roster {
	return NewRoster(eventID,
		checkin.Attendee{ID: "A1024", ChineseName: "王小明", EnglishName: "Ming Wang", Type: "員工", Department: "研發部", HasLottery: true},
		checkin.Attendee{ID: "A2048", ChineseName: "陳美玲", EnglishName: "Meiling Chen", Type: "員工", Department: "業務部", IsVegetarians: true, HasLottery: true},
		checkin.Attendee{ID: "B0007", ChineseName: "林志豪", EnglishName: "Chihao Lin", Type: "眷屬", Department: "研發部", CheckIn: true},
		checkin.Attendee{ID: "C0311", ChineseName: "張雅婷", EnglishName: "Yating Chang", Type: "來賓", Department: "行政部"},
	)
}

// EventID returns the event this roster belongs to.
func (r *Roster) EventID() string {
	return r.eventID
}

// Get returns a copy of the attendee with id.
func (r *Roster) Get(id string) (checkin.Attendee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.attendees[id]
	if !ok {
		return checkin.Attendee{}, false
	}
	return *a, true
}

// MarkCheckedIn checks id in. It returns false for unknown ids.
func (r *Roster) MarkCheckedIn(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attendees[id]
	if !ok {
		return false
	}
	a.CheckIn = true
	return true
}

// NoShows returns attendees not yet checked in, ordered by id.
func (r *Roster) NoShows() []checkin.Attendee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]checkin.Attendee, 0, len(r.attendees))
	for _, a := range r.attendees {
		if !a.CheckIn {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Counts returns the roster size and how many have checked in.
func (r *Roster) Counts() (total, checkedIn int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.attendees {
		total++
		if a.CheckIn {
			checkedIn++
		}
	}
	return
}
