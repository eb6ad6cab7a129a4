package enums

import "fmt"

// SkillLevel grades rotation staff seniority.
type SkillLevel string

const (
	SkillLevelJunior SkillLevel = "junior"
	SkillLevelMid    SkillLevel = "mid"
	SkillLevelSenior SkillLevel = "senior"
)

var validSkillLevels = []SkillLevel{
	SkillLevelJunior,
	SkillLevelMid,
	SkillLevelSenior,
}

// String implements fmt.Stringer.
func (s SkillLevel) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SkillLevel.
func (s SkillLevel) IsValid() bool {
	for _, candidate := range validSkillLevels {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSkillLevel converts raw input into a SkillLevel.
func ParseSkillLevel(value string) (SkillLevel, error) {
	for _, candidate := range validSkillLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid skill level %q", value)
}
