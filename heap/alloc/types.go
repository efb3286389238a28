package alloc

import "fmt"

// Ref is the offset of a block's data segment within the arena.
type Ref = uint32

// NilRef never addresses a data segment; Free(NilRef) is a no-op.
const NilRef Ref = 0

// CoalescePolicy selects what Free does with free physical neighbors.
type CoalescePolicy uint8

const (
	// CoalesceImmediate merges a freed block with free neighbors on both sides.
	CoalesceImmediate CoalescePolicy = iota
	// CoalesceNone never merges; freed blocks keep their size.
	CoalesceNone
)

func (p CoalescePolicy) String() string {
	switch p {
	case CoalesceImmediate:
		return "coalesce"
	case CoalesceNone:
		return "none"
	}
	return fmt.Sprintf("CoalescePolicy(%d)", uint8(p))
}

// ParsePolicy maps a policy name as printed by String back to its value.
func ParsePolicy(s string) (CoalescePolicy, error) {
	switch s {
	case "coalesce", "immediate":
		return CoalesceImmediate, nil
	case "none", "classic":
		return CoalesceNone, nil
	}
	return 0, fmt.Errorf("%w: unknown coalesce policy %q", ErrInvalidConfig, s)
}
