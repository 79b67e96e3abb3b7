// Package selection tracks the selected world positions shared by all panes.
package selection

import (
	"slices"

	"github.com/philipparndt/quadview/pkg/geometry"
)

// DuplicateEpsilon is the squared distance under which two positions are considered the same
const DuplicateEpsilon = 0.01

// Observer is called whenever the primary selection changes. selected is
// false when the selection was cleared.
type Observer func(primary geometry.Vector3, selected bool)

// Selection is an ordered list of positions with one primary entry
type Selection struct {
	all       []geometry.Vector3
	primary   int
	observers []Observer
}

// New creates an empty selection
func New() *Selection {
	return &Selection{primary: -1}
}

// OnChanged registers an observer
func (s *Selection) OnChanged(fn Observer) {
	s.observers = append(s.observers, fn)
}

// Replace makes p the only selected position
func (s *Selection) Replace(p geometry.Vector3) {
	s.all = []geometry.Vector3{p}
	s.primary = 0
	s.notify()
}

// Add appends p and makes it primary. A position within DuplicateEpsilon of
// an existing entry is not appended; that entry becomes primary instead.
// It reports whether p was appended.
func (s *Selection) Add(p geometry.Vector3) bool {
	if i := s.indexOf(p); i >= 0 {
		if i != s.primary {
			s.primary = i
			s.notify()
		}
		return false
	}
	s.all = append(s.all, p)
	s.primary = len(s.all) - 1
	s.notify()
	return true
}

// SetPrimary moves the primary entry to p. It selects p when the selection is
// empty. Other entries within DuplicateEpsilon of p are merged into the primary.
func (s *Selection) SetPrimary(p geometry.Vector3) {
	if s.primary < 0 {
		s.Replace(p)
		return
	}
	if s.all[s.primary] == p {
		return
	}
	s.all[s.primary] = p

	kept := s.all[:0]
	primary := 0
	for i, q := range s.all {
		if i != s.primary && q.DistanceSquared(p) < DuplicateEpsilon {
			continue
		}
		if i == s.primary {
			primary = len(kept)
		}
		kept = append(kept, q)
	}
	s.all = kept
	s.primary = primary
	s.notify()
}

// Clear removes every entry
func (s *Selection) Clear() {
	if len(s.all) == 0 {
		return
	}
	s.all = nil
	s.primary = -1
	s.notify()
}

// Primary returns the primary position
func (s *Selection) Primary() (geometry.Vector3, bool) {
	if s.primary < 0 {
		return geometry.Vector3{}, false
	}
	return s.all[s.primary], true
}

// All returns a copy of the selected positions in insertion order
func (s *Selection) All() []geometry.Vector3 {
	return slices.Clone(s.all)
}

// Len returns the number of selected positions
func (s *Selection) Len() int {
	return len(s.all)
}

// Bounds returns the bounding box of the selection
func (s *Selection) Bounds() (geometry.BoundingBox, bool) {
	return geometry.BoundsOf(s.all)
}

func (s *Selection) indexOf(p geometry.Vector3) int {
	return slices.IndexFunc(s.all, func(q geometry.Vector3) bool {
		return q.DistanceSquared(p) < DuplicateEpsilon
	})
}

func (s *Selection) notify() {
	primary, ok := s.Primary()
	for _, fn := range s.observers {
		fn(primary, ok)
	}
}
