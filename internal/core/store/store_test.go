package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub KV
// ---------------------------------------------------------------------------

type stubKV struct {
	data   map[string]string
	sets   []string // keys written, in order
	setErr error
	getErr error
}

func newStubKV() *stubKV {
	return &stubKV{data: make(map[string]string)}
}

func (k *stubKV) Get(_ context.Context, key string) (string, bool, error) {
	if k.getErr != nil {
		return "", false, k.getErr
	}
	v, ok := k.data[key]
	return v, ok, nil
}

func (k *stubKV) Set(_ context.Context, key, value string) error {
	if k.setErr != nil {
		return k.setErr
	}
	k.data[key] = value
	k.sets = append(k.sets, key)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)

func sequentialIDs() func() domain.ID {
	n := 0
	return func() domain.ID {
		n++
		return domain.ID(fmt.Sprintf("id-%d", n))
	}
}

func newTestStore(t *testing.T, kv *stubKV, policy UnassignPolicy) *Store {
	t.Helper()
	s, err := Load(context.Background(), kv, Options{
		UnassignPolicy: policy,
		Now:            func() time.Time { return fixedNow },
		NewID:          sequentialIDs(),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func addItem(t *testing.T, s *Store, date string, slot domain.TimeSlot, workers ...domain.ID) domain.WorkItem {
	t.Helper()
	w, err := s.AddWorkItem(context.Background(), domain.WorkItem{
		Title:    "Stocktake",
		Place:    "Warehouse 3",
		Date:     date,
		TimeSlot: slot,
	}, workers)
	if err != nil {
		t.Fatalf("AddWorkItem: %v", err)
	}
	return w
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad_SeedsDefaultsAndPersistsEveryKey(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(t, kv, PolicyDiscard)

	if got := len(s.Users()); got != 4 {
		t.Errorf("expected 4 seed users, got %d", got)
	}
	items := s.WorkItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 seed work items, got %d", len(items))
	}
	if items[0].Date != "2026-03-14" {
		t.Errorf("seed items should be dated today, got %s", items[0].Date)
	}
	if got := len(s.Statuses()); got != 3 {
		t.Errorf("expected 3 seed statuses, got %d", got)
	}
	if _, ok := s.Status("101", "3"); !ok {
		t.Error("expected seed assignment of worker 3 to item 101")
	}
	if s.JoinCode() != domain.DefaultJoinCode {
		t.Errorf("expected default join code, got %q", s.JoinCode())
	}

	for _, key := range []string{KeyUsers, KeyWorkItems, KeyStatuses, KeyMessages, KeyJoinCode, KeyArchived} {
		if _, ok := kv.data[key]; !ok {
			t.Errorf("expected key %s to be persisted", key)
		}
	}
	if kv.data[KeyJoinCode] != domain.DefaultJoinCode {
		t.Errorf("join code should be stored raw, got %q", kv.data[KeyJoinCode])
	}
}

func TestLoad_ReadsLegacyRecords(t *testing.T) {
	kv := newStubKV()
	kv.data[KeyUsers] = `[{"id":1,"name":"Admin","email":"a@x.io","role":"admin"},{"id":7,"name":"Wes","email":"w@x.io","role":"worker"}]`
	kv.data[KeyWorkItems] = `[{"id":55,"title":"Dock","description":"","place":"Pier","date":"2024-05-01","timeSlot":"Noon","startTime":"12:00","endTime":"16:00","createdBy":1,"teamLeaderId":null}]`
	kv.data[KeyStatuses] = `[{"id":900,"workId":55,"userId":7,"interest":true,"attendance":null}]`
	kv.data[KeyJoinCode] = "ABC234"

	s := newTestStore(t, kv, PolicyDiscard)

	st, ok := s.Status("55", "7")
	if !ok {
		t.Fatal("expected legacy status to load")
	}
	if st.Interest != domain.Yes || st.Attendance != domain.Unknown {
		t.Errorf("unexpected answers: %+v", st)
	}
	w, _ := s.WorkItem("55")
	if w.TeamLeaderID != "" {
		t.Errorf("null team leader should decode empty, got %q", w.TeamLeaderID)
	}
	if s.JoinCode() != "ABC234" {
		t.Errorf("expected stored join code, got %q", s.JoinCode())
	}
}

func TestLoad_StatusesAbsentDerivesFromStoredItems(t *testing.T) {
	kv := newStubKV()
	kv.data[KeyWorkItems] = `[{"id":"102","title":"Security","place":"Hall","date":"2024-05-01","timeSlot":"Night"}]`

	s := newTestStore(t, kv, PolicyDiscard)

	statuses := s.Statuses()
	if len(statuses) != 1 || statuses[0].UserID != "4" {
		t.Fatalf("expected only the seed assignment for item 102, got %+v", statuses)
	}
}

func TestLoad_BackendError(t *testing.T) {
	kv := newStubKV()
	kv.getErr = errors.New("connection refused")

	if _, err := Load(context.Background(), kv, Options{}); err == nil {
		t.Fatal("expected load error")
	}
}

func TestLoad_KeyPrefix(t *testing.T) {
	kv := newStubKV()
	if _, err := Load(context.Background(), kv, Options{KeyPrefix: "tenant-a:"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := kv.data["tenant-a:"+KeyUsers]; !ok {
		t.Error("expected prefixed users key")
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func TestAddUser_AssignsIDAndPersists(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(t, kv, PolicyDiscard)

	in := domain.User{Name: "Ana", Email: "ana@worker.com", Role: domain.RoleWorker, Phone: "555"}
	created, err := s.AddUser(context.Background(), in)
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	got, ok := s.User(created.ID)
	if !ok {
		t.Fatal("expected lookup by id to succeed")
	}
	in.ID = created.ID
	if got != in {
		t.Errorf("stored user %+v differs from input %+v", got, in)
	}
	if !strings.Contains(kv.data[KeyUsers], "ana@worker.com") {
		t.Error("expected users key to contain the new user")
	}
}

func TestAddUser_RapidCreatesGetDistinctIDs(t *testing.T) {
	s, err := Load(context.Background(), newStubKV(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a, _ := s.AddUser(context.Background(), domain.User{Name: "A"})
	b, _ := s.AddUser(context.Background(), domain.User{Name: "B"})
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, both were %q", a.ID)
	}
}

func TestAddWorkItem_CreatesPendingStatuses(t *testing.T) {
	s := newTestStore(t, newStubKV(), PolicyDiscard)

	w := addItem(t, s, "2026-03-20", domain.SlotNoon, "2", "3", "2")

	for _, userID := range []domain.ID{"2", "3"} {
		st, ok := s.Status(w.ID, userID)
		if !ok {
			t.Fatalf("expected status for worker %s", userID)
		}
		if st.Interest != domain.Unknown || st.Attendance != domain.Unknown {
			t.Errorf("expected unknown/unknown, got %+v", st)
		}
	}
	count := 0
	for _, st := range s.Statuses() {
		if st.WorkID == w.ID {
			count++
		}
	}
	if count != 2 {
		t.Errorf("duplicate ids must collapse to one record each, got %d records", count)
	}
}

func TestUpdateWorkItem_PreservesExistingStatuses(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newStubKV(), PolicyDiscard)
	w := addItem(t, s, "2026-03-20", domain.SlotNoon, "2", "3")

	if _, _, err := s.UpdateWorkerStatus(ctx, w.ID, "2", domain.FieldInterest, true, ""); err != nil {
		t.Fatalf("UpdateWorkerStatus: %v", err)
	}

	w.Title = "Stocktake (renamed)"
	for i := 0; i < 2; i++ {
		if found, err := s.UpdateWorkItem(ctx, w, []domain.ID{"2", "3"}); err != nil || !found {
			t.Fatalf("UpdateWorkItem: found=%v err=%v", found, err)
		}
	}

	st, _ := s.Status(w.ID, "2")
	if st.Interest != domain.Yes {
		t.Errorf("interest should survive item edits, got %s", st.Interest)
	}
	got, _ := s.WorkItem(w.ID)
	if got.Title != "Stocktake (renamed)" {
		t.Errorf("expected overwritten title, got %q", got.Title)
	}
}

func TestUpdateWorkItem_NewAssigneeStartsPending(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newStubKV(), PolicyDiscard)
	w := addItem(t, s, "2026-03-20", domain.SlotNoon, "2")

	if _, err := s.UpdateWorkItem(ctx, w, []domain.ID{"2", "4"}); err != nil {
		t.Fatalf("UpdateWorkItem: %v", err)
	}
	st, ok := s.Status(w.ID, "4")
	if !ok || st.Interest != domain.Unknown || st.Attendance != domain.Unknown {
		t.Fatalf("expected pending record for new assignee, got %+v ok=%v", st, ok)
	}
}

func TestUpdateWorkItem_UnassignDiscardsHistory(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newStubKV(), PolicyDiscard)
	w := addItem(t, s, "2026-03-20", domain.SlotNoon, "2", "3")
	_, _, _ = s.UpdateWorkerStatus(ctx, w.ID, "3", domain.FieldInterest, true, "")

	if _, err := s.UpdateWorkItem(ctx, w, []domain.ID{"2"}); err != nil {
		t.Fatalf("UpdateWorkItem: %v", err)
	}
	if _, ok := s.Status(w.ID, "3"); ok {
		t.Error("expected status of unassigned worker to be gone")
	}
	if len(s.ArchivedStatuses()) != 0 {
		t.Error("discard policy must not archive")
	}
}

func TestUpdateWorkItem_UnassignArchivePolicy(t *testing.T) {
	ctx := context.Background()
	kv := newStubKV()
	s := newTestStore(t, kv, PolicyArchive)
	w := addItem(t, s, "2026-03-20", domain.SlotNoon, "2", "3")
	_, _, _ = s.UpdateWorkerStatus(ctx, w.ID, "3", domain.FieldInterest, false, "")

	if _, err := s.UpdateWorkItem(ctx, w, []domain.ID{"2"}); err != nil {
		t.Fatalf("UpdateWorkItem: %v", err)
	}
	if _, ok := s.Status(w.ID, "3"); ok {
		t.Error("archived record must leave the live collection")
	}
	archived := s.ArchivedStatuses()
	if len(archived) != 1 || archived[0].UserID != "3" || archived[0].Interest != domain.No {
		t.Fatalf("expected archived record with history, got %+v", archived)
	}

	var persisted []domain.WorkerStatus
	if err := json.Unmarshal([]byte(kv.data[KeyArchived]), &persisted); err != nil || len(persisted) != 1 {
		t.Errorf("expected archive to be persisted, got %q (%v)", kv.data[KeyArchived], err)
	}
}

func TestUpdateWorkItem_LeavesOtherItemsAlone(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newStubKV(), PolicyDiscard)
	a := addItem(t, s, "2026-03-20", domain.SlotNoon, "2")
	b := addItem(t, s, "2026-03-20", domain.SlotNight, "2", "3")

	if _, err := s.UpdateWorkItem(ctx, a, nil); err != nil {
		t.Fatalf("UpdateWorkItem: %v", err)
	}
	for _, userID := range []domain.ID{"2", "3"} {
		if _, ok := s.Status(b.ID, userID); !ok {
			t.Errorf("status of item b for worker %s should be untouched", userID)
		}
	}
}

func TestUpdateWorkItem_UnknownIDIsNoop(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(t, kv, PolicyDiscard)
	before := len(kv.sets)

	found, err := s.UpdateWorkItem(context.Background(), domain.WorkItem{ID: "nope"}, []domain.ID{"2"})
	if err != nil || found {
		t.Fatalf("expected silent no-op, got found=%v err=%v", found, err)
	}
	if len(kv.sets) != before {
		t.Error("no-op must not write")
	}
	if _, ok := s.Status("nope", "2"); ok {
		t.Error("no status should be created for a missing item")
	}
}

func TestUpdateWorkerStatus_AttendanceTime(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newStubKV(), PolicyDiscard)

	st, found, err := s.UpdateWorkerStatus(ctx, "101", "2", domain.FieldAttendance, true, "")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if st.AttendanceTime != "08:30 AM" {
		t.Errorf("expected clock time, got %q", st.AttendanceTime)
	}

	st, _, _ = s.UpdateWorkerStatus(ctx, "101", "2", domain.FieldAttendance, true, "07:55")
	if st.AttendanceTime != "07:55" {
		t.Errorf("expected explicit time, got %q", st.AttendanceTime)
	}

	st, _, _ = s.UpdateWorkerStatus(ctx, "101", "2", domain.FieldInterest, false, "")
	if st.AttendanceTime != "07:55" {
		t.Errorf("interest must not touch attendance time, got %q", st.AttendanceTime)
	}

	st, _, _ = s.UpdateWorkerStatus(ctx, "101", "2", domain.FieldAttendance, false, "09:00")
	if st.Attendance != domain.No || st.AttendanceTime != "" {
		t.Errorf("expected absent with cleared time, got %+v", st)
	}
}

func TestUpdateWorkerStatus_MissingRecordIsNoop(t *testing.T) {
	s := newTestStore(t, newStubKV(), PolicyDiscard)
	before := s.Statuses()

	_, found, err := s.UpdateWorkerStatus(context.Background(), "101", "4", domain.FieldInterest, true, "")
	if err != nil || found {
		t.Fatalf("expected no-op, got found=%v err=%v", found, err)
	}
	if len(s.Statuses()) != len(before) {
		t.Error("no record should be created")
	}
}

func TestSendMessage_PrependsNewest(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newStubKV(), PolicyDiscard)

	first, _ := s.SendMessage(ctx, domain.Message{FromAdminID: "1", ToUserID: "2", Content: "first"})
	second, _ := s.SendMessage(ctx, domain.Message{FromAdminID: "1", ToUserID: "2", Content: "second"})

	msgs := s.Messages()
	if len(msgs) != 2 || msgs[0].ID != second.ID || msgs[1].ID != first.ID {
		t.Fatalf("expected most-recent-first order, got %+v", msgs)
	}
	if !msgs[0].Timestamp.Equal(fixedNow) {
		t.Errorf("expected timestamp %v, got %v", fixedNow, msgs[0].Timestamp)
	}
}

func TestRegenerateJoinCode_Persists(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(t, kv, PolicyDiscard)

	code, err := s.RegenerateJoinCode(context.Background())
	if err != nil {
		t.Fatalf("RegenerateJoinCode: %v", err)
	}
	if len(code) != domain.JoinCodeLength {
		t.Errorf("unexpected code %q", code)
	}
	if kv.data[KeyJoinCode] != code || s.JoinCode() != code {
		t.Errorf("expected %q to be current and persisted", code)
	}
}

func TestCommands_PersistFailureKeepsMutation(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(t, kv, PolicyDiscard)
	kv.setErr = errors.New("disk full")

	u, err := s.AddUser(context.Background(), domain.User{Name: "Kim"})
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if !errors.Is(err, kv.setErr) {
		t.Errorf("expected wrapped backend error, got %v", err)
	}
	if _, ok := s.User(u.ID); !ok {
		t.Error("in-memory mutation must stand without rollback")
	}
}

func TestQueries_ReturnCopies(t *testing.T) {
	s := newTestStore(t, newStubKV(), PolicyDiscard)

	users := s.Users()
	users[0].Name = "mutated"
	if u, _ := s.User(users[0].ID); u.Name == "mutated" {
		t.Error("Users() must not alias store state")
	}
}
