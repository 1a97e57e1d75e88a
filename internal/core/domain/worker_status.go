package domain

import (
	"bytes"
	"fmt"
)

// TriState is a yes/no answer that may not have been given yet.
// It encodes as JSON null, true, or false.
type TriState int8

const (
	Unknown TriState = iota
	Yes
	No
)

// TriStateOf converts a definite answer.
func TriStateOf(v bool) TriState {
	if v {
		return Yes
	}
	return No
}

func (t TriState) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes Unknown as null.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null, true, or false.
func (t *TriState) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "null":
		*t = Unknown
	case "true":
		*t = Yes
	case "false":
		*t = No
	default:
		return fmt.Errorf("tristate: unexpected value %s", b)
	}
	return nil
}

// StatusField names the mutable answer on a WorkerStatus.
type StatusField string

const (
	FieldInterest   StatusField = "interest"
	FieldAttendance StatusField = "attendance"
)

// WorkerStatus is the assignment of one worker to one work item together
// with the worker's evolving response. At most one exists per
// (WorkID, UserID) pair and its existence is the assignment.
type WorkerStatus struct {
	ID             ID       `json:"id"`
	WorkID         ID       `json:"workId"`
	UserID         ID       `json:"userId"`
	Interest       TriState `json:"interest"`
	Attendance     TriState `json:"attendance"`
	AttendanceTime string   `json:"attendanceTime,omitempty"`
}

// InterestLabel renders the interest answer for exports.
func (s WorkerStatus) InterestLabel() string {
	switch s.Interest {
	case Yes:
		return "Interested"
	case No:
		return "Not Interested"
	default:
		return "Pending"
	}
}

// AttendanceLabel renders the attendance answer for exports.
func (s WorkerStatus) AttendanceLabel() string {
	switch s.Attendance {
	case Yes:
		return "Present"
	case No:
		return "Absent"
	default:
		return "-"
	}
}
