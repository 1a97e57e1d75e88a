package schedule

import (
	"sort"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// Summary counts the answers given for one work item.
type Summary struct {
	Assigned      int `json:"assigned"`
	Interested    int `json:"interested"`
	NotInterested int `json:"not_interested"`
	Attending     int `json:"attending"`
}

// Summarize counts the status records of workID.
func Summarize(snap domain.Snapshot, workID domain.ID) Summary {
	var s Summary
	for _, st := range snap.Statuses {
		if st.WorkID != workID {
			continue
		}
		s.Assigned++
		switch st.Interest {
		case domain.Yes:
			s.Interested++
		case domain.No:
			s.NotInterested++
		}
		if st.Attendance == domain.Yes {
			s.Attending++
		}
	}
	return s
}

// Assignment is a work item seen from one assigned worker.
type Assignment struct {
	WorkItem domain.WorkItem
	Status   domain.WorkerStatus
	IsLeader bool
}

// AssignedTo lists the work items userID is assigned to, newest first. A
// non-empty slot restricts the list to that slot.
func AssignedTo(snap domain.Snapshot, userID domain.ID, slot domain.TimeSlot) []Assignment {
	var out []Assignment
	for i := len(snap.WorkItems) - 1; i >= 0; i-- {
		w := snap.WorkItems[i]
		if slot != "" && w.TimeSlot != slot {
			continue
		}
		for _, st := range snap.Statuses {
			if st.WorkID == w.ID && st.UserID == userID {
				out = append(out, Assignment{WorkItem: w, Status: st, IsLeader: w.LedBy(userID)})
				break
			}
		}
	}
	return out
}

// Inbox returns the messages addressed to userID, newest first.
func Inbox(snap domain.Snapshot, userID domain.ID) []domain.Message {
	var out []domain.Message
	for _, m := range snap.Messages {
		if m.ToUserID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// DayStats is the input to the daily insight.
type DayStats struct {
	ActiveWork    int `json:"active_work"`
	Interested    int `json:"interested"`
	NotInterested int `json:"not_interested"`
}

// DailyStats counts the work items dated day and the interest answers given
// for them.
func DailyStats(snap domain.Snapshot, day string) DayStats {
	var stats DayStats
	today := make(map[domain.ID]struct{})
	for _, w := range snap.WorkItems {
		if w.Date == day {
			today[w.ID] = struct{}{}
			stats.ActiveWork++
		}
	}
	for _, st := range snap.Statuses {
		if _, ok := today[st.WorkID]; !ok {
			continue
		}
		switch st.Interest {
		case domain.Yes:
			stats.Interested++
		case domain.No:
			stats.NotInterested++
		}
	}
	return stats
}
