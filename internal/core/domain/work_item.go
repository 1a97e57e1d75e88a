package domain

// TimeSlot is one of the fixed daily partitions used for scheduling and
// conflict grouping.
type TimeSlot string

const (
	SlotMorning TimeSlot = "Morning"
	SlotNoon    TimeSlot = "Noon"
	SlotNight   TimeSlot = "Night"
)

// TimeSlots lists every slot in day order.
var TimeSlots = []TimeSlot{SlotMorning, SlotNoon, SlotNight}

// Valid reports whether s is one of the known slots.
func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotNoon, SlotNight:
		return true
	}
	return false
}

// DateLayout is the calendar date format used by WorkItem.Date.
const DateLayout = "2006-01-02"

// WorkItem is a schedulable shift posted by an admin.
type WorkItem struct {
	ID           ID       `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Place        string   `json:"place"`
	Date         string   `json:"date"`
	TimeSlot     TimeSlot `json:"timeSlot"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	CreatedBy    ID       `json:"createdBy"`
	TeamLeaderID ID       `json:"teamLeaderId,omitempty"`
}

// Label renders the item as "<title> (<place>)".
func (w WorkItem) Label() string {
	return w.Title + " (" + w.Place + ")"
}

// LedBy reports whether userID is the item's team leader.
func (w WorkItem) LedBy(userID ID) bool {
	return w.TeamLeaderID != "" && w.TeamLeaderID == userID
}
