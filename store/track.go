package store

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/neocomp/comperr"
)

// Tracked holds the properties read and written while tracking, in id order.
type Tracked struct {
	Reads  []PropID
	Writes []PropID
}

// Role is the part a property plays in a tracked computation.
type Role int

const (
	Read Role = iota
	Write
)

func (s *Store) IsTracking() bool {
	return s.tracking
}

// StartTrack enters tracking mode. Writes made while tracking are batched.
func (s *Store) StartTrack() error {
	if s.tracking {
		return comperr.New(scope, ErrAlreadyTracking, "")
	}
	s.tracking = true
	s.StartBulkUpdate()
	return nil
}

// EndTrack leaves tracking mode, delivers the batched writes and returns
// what was tracked. The tracked sets are returned even if delivery fails.
func (s *Store) EndTrack() (Tracked, error) {
	if !s.tracking {
		return Tracked{}, comperr.New(scope, ErrNotTracking, "")
	}
	s.tracking = false
	tracked := Tracked{
		Reads:  sortedIDs(s.reads),
		Writes: sortedIDs(s.writes),
	}
	s.reads.Clear()
	s.writes.Clear()
	return tracked, s.EndBulkUpdate()
}

// TrackHint records id in the given role without touching its value.
func (s *Store) TrackHint(id PropID, role Role) {
	if !s.tracking {
		return
	}
	switch role {
	case Read:
		s.reads.Add(id)
	case Write:
		s.writes.Add(id)
	}
}

func sortedIDs(set mapset.Set[PropID]) []PropID {
	ids := set.ToSlice()
	slices.Sort(ids)
	return ids
}
