package store

import (
	"slices"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// Status returns the record for (workID, userID), if any.
func (s *Store) Status(workID, userID domain.ID) (domain.WorkerStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.statusIndex(workID, userID)
	if idx < 0 {
		return domain.WorkerStatus{}, false
	}
	return s.statuses[idx], true
}

// User returns the user with id, if any.
func (s *Store) User(id domain.ID) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// WorkItem returns the work item with id, if any.
func (s *Store) WorkItem(id domain.ID) (domain.WorkItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.workItemIndex(id)
	if idx < 0 {
		return domain.WorkItem{}, false
	}
	return s.workItems[idx], true
}

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

func (s *Store) WorkItems() []domain.WorkItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.workItems)
}

func (s *Store) Statuses() []domain.WorkerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.statuses)
}

// ArchivedStatuses returns the records removed under PolicyArchive.
func (s *Store) ArchivedStatuses() []domain.WorkerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.archived)
}

// Messages returns the log, most recent first.
func (s *Store) Messages() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages)
}

func (s *Store) JoinCode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joinCode
}

// Snapshot copies every collection under one read lock.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{
		Users:     slices.Clone(s.users),
		WorkItems: slices.Clone(s.workItems),
		Statuses:  slices.Clone(s.statuses),
		Messages:  slices.Clone(s.messages),
	}
}
