package rotation

import "github.com/medrota/clinicrota-backend/pkg/enums"

// The two cycle variants below share a transition table but anchor the
// "absent" case differently. Branch staff default to off, so an absent entry
// is cycled as if it were off. Rotation staff have no default state at all;
// off is never stored for them because the reconciler deletes the assignment
// instead. The variants are kept as separately named functions on purpose.

// DefaultOffCycle advances a branch-staff schedule status:
// working -> leave -> sick_leave -> off -> working. A nil current status is
// treated as off, so the first cycle yields working.
func DefaultOffCycle(current *enums.ScheduleStatus) enums.ScheduleStatus {
	if current == nil {
		return enums.ScheduleStatusWorking
	}
	switch *current {
	case enums.ScheduleStatusWorking:
		return enums.ScheduleStatusLeave
	case enums.ScheduleStatusLeave:
		return enums.ScheduleStatusSickLeave
	case enums.ScheduleStatusSickLeave:
		return enums.ScheduleStatusOff
	default:
		return enums.ScheduleStatusWorking
	}
}

// NotAssignedCycle advances a rotation-calendar status:
// off -> working -> leave -> sick_leave -> off. A nil current status means
// "not assigned" and yields working.
func NotAssignedCycle(current *enums.ScheduleStatus) enums.ScheduleStatus {
	if current == nil {
		return enums.ScheduleStatusWorking
	}
	switch *current {
	case enums.ScheduleStatusOff:
		return enums.ScheduleStatusWorking
	case enums.ScheduleStatusWorking:
		return enums.ScheduleStatusLeave
	case enums.ScheduleStatusLeave:
		return enums.ScheduleStatusSickLeave
	default:
		return enums.ScheduleStatusOff
	}
}
