package enums

import "fmt"

// ScheduleStatus is the availability state recorded for a staff member on a
// calendar day.
type ScheduleStatus string

const (
	ScheduleStatusWorking   ScheduleStatus = "working"
	ScheduleStatusOff       ScheduleStatus = "off"
	ScheduleStatusLeave     ScheduleStatus = "leave"
	ScheduleStatusSickLeave ScheduleStatus = "sick_leave"
)

var validScheduleStatuses = []ScheduleStatus{
	ScheduleStatusWorking,
	ScheduleStatusOff,
	ScheduleStatusLeave,
	ScheduleStatusSickLeave,
}

// String implements fmt.Stringer.
func (s ScheduleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ScheduleStatus.
func (s ScheduleStatus) IsValid() bool {
	for _, candidate := range validScheduleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScheduleStatus converts raw input into a ScheduleStatus.
func ParseScheduleStatus(value string) (ScheduleStatus, error) {
	for _, candidate := range validScheduleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schedule status %q", value)
}
