package snapping

import (
	"fmt"
	"strings"
)

// Mode is a snap policy
type Mode int

const (
	Grid Mode = iota
	Point
	Edge
	Face
	Perpendicular
)

// Modes lists every snap mode
var Modes = []Mode{Grid, Point, Edge, Face, Perpendicular}

func (m Mode) String() string {
	switch m {
	case Grid:
		return "grid"
	case Point:
		return "point"
	case Edge:
		return "edge"
	case Face:
		return "face"
	case Perpendicular:
		return "perpendicular"
	}
	return fmt.Sprintf("snap(%d)", int(m))
}

// ParseMode parses a snap mode name
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return Grid, fmt.Errorf("unknown snap mode %q", s)
}
