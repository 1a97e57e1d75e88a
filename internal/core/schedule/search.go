package schedule

import (
	"sort"
	"strings"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// Filter narrows a work item listing. Zero fields do not filter.
type Filter struct {
	// Query matches title, place or any assigned worker's name,
	// case-insensitively.
	Query string
	Slot  domain.TimeSlot
	Date  string
}

// Search returns the matching work items ordered by date, oldest first.
func Search(snap domain.Snapshot, f Filter) []domain.WorkItem {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	var out []domain.WorkItem
	for _, w := range snap.WorkItems {
		if f.Slot != "" && w.TimeSlot != f.Slot {
			continue
		}
		if f.Date != "" && w.Date != f.Date {
			continue
		}
		if q != "" && !matches(snap, w, q) {
			continue
		}
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

func matches(snap domain.Snapshot, w domain.WorkItem, q string) bool {
	if strings.Contains(strings.ToLower(w.Title), q) || strings.Contains(strings.ToLower(w.Place), q) {
		return true
	}
	for _, st := range snap.Statuses {
		if st.WorkID != w.ID {
			continue
		}
		if u, ok := snap.User(st.UserID); ok && strings.Contains(strings.ToLower(u.Name), q) {
			return true
		}
	}
	return false
}
