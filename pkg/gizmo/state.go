package gizmo

import "fmt"

// Mode controls how the gizmo is shown
type Mode int

const (
	ModeNone Mode = iota
	ModeBox
	ModeHandle
)

// Next returns the mode that follows m in the None, Box, Handle cycle
func (m Mode) Next() Mode {
	switch m {
	case ModeNone:
		return ModeBox
	case ModeBox:
		return ModeHandle
	default:
		return ModeNone
	}
}

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeBox:
		return "box"
	case ModeHandle:
		return "handle"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Operation is the manipulation applied by dragging a handle
type Operation int

const (
	Translate Operation = iota
	Rotate
	Scale
)

// Next returns the operation that follows o in the Translate, Rotate, Scale cycle
func (o Operation) Next() Operation {
	switch o {
	case Translate:
		return Rotate
	case Rotate:
		return Scale
	default:
		return Translate
	}
}

func (o Operation) String() string {
	switch o {
	case Translate:
		return "translate"
	case Rotate:
		return "rotate"
	case Scale:
		return "scale"
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

// ParseOperation parses an operation name
func ParseOperation(s string) (Operation, error) {
	for _, o := range []Operation{Translate, Rotate, Scale} {
		if s == o.String() {
			return o, nil
		}
	}
	return Translate, fmt.Errorf("unknown gizmo operation %q", s)
}

// Space selects world or local handle axes
type Space int

const (
	Global Space = iota
	Local
)

// Next toggles between Global and Local
func (s Space) Next() Space {
	if s == Global {
		return Local
	}
	return Global
}

func (s Space) String() string {
	if s == Local {
		return "local"
	}
	return "global"
}
