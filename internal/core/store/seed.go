package store

import (
	"strconv"
	"time"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// Seed is the fixture set used for keys missing from the backend.
type Seed struct {
	Users     []domain.User
	WorkItems []domain.WorkItem
	// Assignments maps a seed work item id to its assigned worker ids.
	Assignments map[domain.ID][]domain.ID
}

// DefaultSeed returns one admin, three workers and two work items dated on
// now's calendar day.
func DefaultSeed(now time.Time) *Seed {
	today := now.Format(domain.DateLayout)
	return &Seed{
		Users: []domain.User{
			{ID: "1", Name: "Admin Major", Email: "admin@as.service", Role: domain.RoleAdmin, Avatar: "https://picsum.photos/100/100", Address: "Headquarters, 1st Ave", Phone: "555-0100"},
			{ID: "2", Name: "John Doe", Email: "john@worker.com", Role: domain.RoleWorker, Avatar: "https://picsum.photos/101/101", Address: "123 Maple St, North District", Phone: "555-0101"},
			{ID: "3", Name: "Jane Smith", Email: "jane@worker.com", Role: domain.RoleWorker, Avatar: "https://picsum.photos/102/102", Address: "456 Oak Ave, South Park", Phone: "555-0102"},
			{ID: "4", Name: "Mike Ross", Email: "mike@worker.com", Role: domain.RoleWorker, Avatar: "https://picsum.photos/103/103", Address: "789 Pine Ln, City Center", Phone: "555-0103"},
		},
		WorkItems: []domain.WorkItem{
			{
				ID:           "101",
				Title:        "Event Catering Setup",
				Description:  "Setup tables and chairs for the gala dinner.",
				Place:        "Grand Hotel Ballroom",
				Date:         today,
				TimeSlot:     domain.SlotMorning,
				StartTime:    "08:00",
				EndTime:      "12:00",
				CreatedBy:    "1",
				TeamLeaderID: "2",
			},
			{
				ID:           "102",
				Title:        "Security Detail",
				Description:  "Perimeter check and guest list management.",
				Place:        "City Convention Center",
				Date:         today,
				TimeSlot:     domain.SlotNight,
				StartTime:    "18:00",
				EndTime:      "23:00",
				CreatedBy:    "1",
				TeamLeaderID: "4",
			},
		},
		Assignments: map[domain.ID][]domain.ID{
			"101": {"2", "3"},
			"102": {"4"},
		},
	}
}

// initialStatuses derives pending status records by cross-referencing work
// items with the seed assignment map. Ids are sequential from 1.
func initialStatuses(items []domain.WorkItem, assignments map[domain.ID][]domain.ID) []domain.WorkerStatus {
	statuses := []domain.WorkerStatus{}
	next := 1
	for _, w := range items {
		for _, userID := range assignments[w.ID] {
			statuses = append(statuses, domain.WorkerStatus{
				ID:     domain.ID(strconv.Itoa(next)),
				WorkID: w.ID,
				UserID: userID,
			})
			next++
		}
	}
	return statuses
}
