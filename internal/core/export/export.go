// Package export flattens the scheduling collections into tabular rows and
// writes them as CSV.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// NoLeader is written when a work item has no (resolvable) team leader.
const NoLeader = "None"

var (
	RosterHeader   = []string{"ID", "Name", "Email", "Phone", "Address"}
	ScheduleHeader = []string{"Work Title", "Date", "Time Slot", "Location", "Team Leader", "Worker Name", "Status", "Attendance", "Time In"}
)

// RosterRow is one worker in the roster export.
type RosterRow struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
}

func (r RosterRow) Fields() []string {
	return []string{r.ID, r.Name, r.Email, r.Phone, r.Address}
}

// ScheduleRow is one (work item, assigned worker) pair in the schedule
// export.
type ScheduleRow struct {
	WorkTitle  string
	Date       string
	TimeSlot   string
	Place      string
	TeamLeader string
	WorkerName string
	Interest   string
	Attendance string
	TimeIn     string
}

func (r ScheduleRow) Fields() []string {
	return []string{r.WorkTitle, r.Date, r.TimeSlot, r.Place, r.TeamLeader, r.WorkerName, r.Interest, r.Attendance, r.TimeIn}
}

// WorkerRoster returns one row per worker-role user in store order.
func WorkerRoster(snap domain.Snapshot) []RosterRow {
	workers := snap.Workers()
	rows := make([]RosterRow, 0, len(workers))
	for _, u := range workers {
		rows = append(rows, RosterRow{
			ID:      u.ID.String(),
			Name:    u.Name,
			Email:   u.Email,
			Phone:   u.Phone,
			Address: u.Address,
		})
	}
	return rows
}

// Schedule returns one row per status record, grouped by work item in store
// order and then by record order. Records whose worker no longer resolves
// are skipped.
func Schedule(snap domain.Snapshot) []ScheduleRow {
	var rows []ScheduleRow
	for _, w := range snap.WorkItems {
		leader := NoLeader
		if w.TeamLeaderID != "" {
			if u, ok := snap.User(w.TeamLeaderID); ok {
				leader = u.Name
			}
		}
		for _, st := range snap.StatusesFor(w.ID) {
			worker, ok := snap.User(st.UserID)
			if !ok {
				continue
			}
			rows = append(rows, ScheduleRow{
				WorkTitle:  w.Title,
				Date:       w.Date,
				TimeSlot:   string(w.TimeSlot),
				Place:      w.Place,
				TeamLeader: leader,
				WorkerName: worker.Name,
				Interest:   st.InterestLabel(),
				Attendance: st.AttendanceLabel(),
				TimeIn:     st.AttendanceTime,
			})
		}
	}
	return rows
}

// WriteRosterCSV writes the roster with a header row.
func WriteRosterCSV(w io.Writer, rows []RosterRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Fields())
	}
	return writeQuoted(w, RosterHeader, records)
}

// WriteScheduleCSV writes the schedule with a header row.
func WriteScheduleCSV(w io.Writer, rows []ScheduleRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Fields())
	}
	return writeQuoted(w, ScheduleHeader, records)
}

// writeQuoted writes the header row bare and every data field wrapped in
// double quotes, with embedded quotes doubled (RFC 4180).
func writeQuoted(w io.Writer, header []string, records [][]string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(header, ","))
	bw.WriteByte('\n')
	for _, rec := range records {
		for i, f := range rec {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
			bw.WriteByte('"')
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
