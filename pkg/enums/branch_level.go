package enums

import "fmt"

// BranchLevel ranks an effective-branch pairing (and the assignment created
// from it): priority branches are offered first, reserved branches back-fill.
type BranchLevel int

const (
	BranchLevelPriority BranchLevel = 1
	BranchLevelReserved BranchLevel = 2
)

// IsValid reports whether the value is a known BranchLevel.
func (l BranchLevel) IsValid() bool {
	return l == BranchLevelPriority || l == BranchLevelReserved
}

// ParseBranchLevel converts raw input into a BranchLevel.
func ParseBranchLevel(value int) (BranchLevel, error) {
	level := BranchLevel(value)
	if !level.IsValid() {
		return 0, fmt.Errorf("invalid branch level %d", value)
	}
	return level, nil
}
