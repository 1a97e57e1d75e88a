package store

import (
	"context"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// AddUser appends u under a newly assigned id.
func (s *Store) AddUser(ctx context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.opts.NewID()
	s.users = append(s.users, u)
	return u, s.persist(ctx, KeyUsers, s.users)
}

// AddWorkItem appends w under a newly assigned id and creates one pending
// status record per distinct assigned worker.
func (s *Store) AddWorkItem(ctx context.Context, w domain.WorkItem, assignedWorkerIDs []domain.ID) (domain.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.ID = s.opts.NewID()
	s.workItems = append(s.workItems, w)

	seen := make(map[domain.ID]struct{}, len(assignedWorkerIDs))
	for _, userID := range assignedWorkerIDs {
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}
		s.statuses = append(s.statuses, s.newStatus(w.ID, userID))
	}

	if err := s.persist(ctx, KeyWorkItems, s.workItems); err != nil {
		return w, err
	}
	return w, s.persist(ctx, KeyStatuses, s.statuses)
}

// UpdateWorkItem overwrites the stored item with w.ID and reconciles its
// status records against assignedWorkerIDs: existing records are kept as
// they are, missing ones are created pending, and records of workers no
// longer assigned are handled by the unassignment policy. Records of other
// work items are untouched. It reports false, without changes, when no item
// has w.ID.
func (s *Store) UpdateWorkItem(ctx context.Context, w domain.WorkItem, assignedWorkerIDs []domain.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.workItemIndex(w.ID)
	if idx < 0 {
		return false, nil
	}
	s.workItems[idx] = w

	others := make([]domain.WorkerStatus, 0, len(s.statuses))
	current := make(map[domain.ID]domain.WorkerStatus)
	var currentOrder []domain.ID
	for _, st := range s.statuses {
		if st.WorkID != w.ID {
			others = append(others, st)
			continue
		}
		current[st.UserID] = st
		currentOrder = append(currentOrder, st.UserID)
	}

	kept := make(map[domain.ID]struct{}, len(assignedWorkerIDs))
	reconciled := make([]domain.WorkerStatus, 0, len(assignedWorkerIDs))
	for _, userID := range assignedWorkerIDs {
		if _, dup := kept[userID]; dup {
			continue
		}
		kept[userID] = struct{}{}
		if existing, ok := current[userID]; ok {
			reconciled = append(reconciled, existing)
			continue
		}
		reconciled = append(reconciled, s.newStatus(w.ID, userID))
	}

	archivedAny := false
	if s.opts.UnassignPolicy == PolicyArchive {
		for _, userID := range currentOrder {
			if _, ok := kept[userID]; !ok {
				s.archived = append(s.archived, current[userID])
				archivedAny = true
			}
		}
	}

	s.statuses = append(others, reconciled...)

	if err := s.persist(ctx, KeyWorkItems, s.workItems); err != nil {
		return true, err
	}
	if err := s.persist(ctx, KeyStatuses, s.statuses); err != nil {
		return true, err
	}
	if archivedAny {
		return true, s.persist(ctx, KeyArchived, s.archived)
	}
	return true, nil
}

// UpdateWorkerStatus sets one answer on the (workID, userID) record. Setting
// attendance to yes records at, or the current clock time when at is empty;
// setting it to no clears the recorded time. Interest never touches the
// attendance time. It reports false, without changes, when no record exists.
func (s *Store) UpdateWorkerStatus(ctx context.Context, workID, userID domain.ID, field domain.StatusField, value bool, at string) (domain.WorkerStatus, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.statusIndex(workID, userID)
	if idx < 0 {
		return domain.WorkerStatus{}, false, nil
	}

	st := &s.statuses[idx]
	switch field {
	case domain.FieldInterest:
		st.Interest = domain.TriStateOf(value)
	case domain.FieldAttendance:
		st.Attendance = domain.TriStateOf(value)
		if value {
			if at == "" {
				at = s.opts.Now().Format(AttendanceTimeLayout)
			}
			st.AttendanceTime = at
		} else {
			st.AttendanceTime = ""
		}
	default:
		return *st, true, nil
	}

	return *st, true, s.persist(ctx, KeyStatuses, s.statuses)
}

// SendMessage stamps m with a new id and the current time and puts it at the
// front of the log.
func (s *Store) SendMessage(ctx context.Context, m domain.Message) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.opts.NewID()
	m.Timestamp = s.opts.Now().UTC()
	s.messages = append([]domain.Message{m}, s.messages...)
	return m, s.persist(ctx, KeyMessages, s.messages)
}

// RegenerateJoinCode replaces the join code with a freshly drawn one.
func (s *Store) RegenerateJoinCode(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.joinCode = domain.NewJoinCode()
	return s.joinCode, s.persistJoinCode(ctx)
}

func (s *Store) newStatus(workID, userID domain.ID) domain.WorkerStatus {
	return domain.WorkerStatus{
		ID:     s.opts.NewID(),
		WorkID: workID,
		UserID: userID,
	}
}

func (s *Store) workItemIndex(id domain.ID) int {
	for i := range s.workItems {
		if s.workItems[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) statusIndex(workID, userID domain.ID) int {
	for i := range s.statuses {
		if s.statuses[i].WorkID == workID && s.statuses[i].UserID == userID {
			return i
		}
	}
	return -1
}
