package domain

// Snapshot is a consistent copy of the store's collections, used by the
// pure derived-view computations.
type Snapshot struct {
	Users     []User
	WorkItems []WorkItem
	Statuses  []WorkerStatus
	Messages  []Message
}

// User looks up a user by id.
func (s Snapshot) User(id ID) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// WorkItem looks up a work item by id.
func (s Snapshot) WorkItem(id ID) (WorkItem, bool) {
	for _, w := range s.WorkItems {
		if w.ID == id {
			return w, true
		}
	}
	return WorkItem{}, false
}

// StatusesFor returns the status records of one work item in store order.
func (s Snapshot) StatusesFor(workID ID) []WorkerStatus {
	var out []WorkerStatus
	for _, st := range s.Statuses {
		if st.WorkID == workID {
			out = append(out, st)
		}
	}
	return out
}

// Workers returns every worker-role user in store order.
func (s Snapshot) Workers() []User {
	var out []User
	for _, u := range s.Users {
		if u.Role == RoleWorker {
			out = append(out, u)
		}
	}
	return out
}
