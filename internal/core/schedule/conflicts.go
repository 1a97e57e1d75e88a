// Package schedule computes read-only views over a store snapshot:
// availability conflicts, search, per-item summaries, calendar grids and
// per-worker lists.
package schedule

import "github.com/asservice/shiftboard/internal/core/domain"

// Conflicts maps each worker already committed to another work item on the
// same date and time slot to that item's "<title> (<place>)" label. The item
// excludeWorkID is ignored so an item never conflicts with itself. When a
// worker is double-booked the last matching record wins. The result is
// advisory; nothing stops the assignment.
func Conflicts(snap domain.Snapshot, date string, slot domain.TimeSlot, excludeWorkID domain.ID) map[domain.ID]string {
	conflicting := make(map[domain.ID]domain.WorkItem)
	for _, w := range snap.WorkItems {
		if w.Date == date && w.TimeSlot == slot && w.ID != excludeWorkID {
			conflicting[w.ID] = w
		}
	}

	busy := make(map[domain.ID]string)
	if len(conflicting) == 0 {
		return busy
	}
	for _, st := range snap.Statuses {
		if w, ok := conflicting[st.WorkID]; ok {
			busy[st.UserID] = w.Label()
		}
	}
	return busy
}
