// internal/app/features/admin/handler_test.go
package admin_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/features/admin"
	"github.com/capstonehub/capstonehub/internal/app/system/indexes"
	"github.com/capstonehub/capstonehub/internal/domain/models"
	"github.com/capstonehub/capstonehub/internal/testutil"
)

func newTestHandler(t *testing.T) (*admin.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	return admin.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func asAdmin(r *http.Request, user testutil.TestUser) *http.Request {
	return testutil.WithUser(r, user)
}

func TestSetDeadline_ReplacesExisting(t *testing.T) {
	h, _ := newTestHandler(t)
	user := testutil.AdminUser()

	first := time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Second)
	second := first.Add(48 * time.Hour)

	for _, due := range []time.Time{first, second} {
		req := testutil.NewJSONRequest(http.MethodPut, "/admin/deadlines/proposal",
			map[string]any{"due": due})
		req = testutil.WithChiURLParam(asAdmin(req, user), "kind", "proposal")
		rec := testutil.NewRecorder()
		h.HandleSetDeadline(rec, req)
		rec.AssertStatus(t, http.StatusOK)
	}

	req := asAdmin(testutil.NewRequest(http.MethodGet, "/admin/deadlines"), user)
	rec := testutil.NewRecorder()
	h.ServeDeadlines(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Deadlines []models.Deadline `json:"deadlines"`
	}
	rec.DecodeJSON(t, &resp)
	if len(resp.Deadlines) != 1 {
		t.Fatalf("expected one deadline document per kind, got %d", len(resp.Deadlines))
	}
	if !resp.Deadlines[0].Due.Equal(second) {
		t.Errorf("deadline not replaced: got %v, want %v", resp.Deadlines[0].Due, second)
	}
}

func TestSetDeadline_RejectsPast(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(http.MethodPut, "/admin/deadlines/proposal",
		map[string]any{"due": time.Now().UTC().Add(-time.Hour)})
	req = testutil.WithChiURLParam(asAdmin(req, testutil.AdminUser()), "kind", "proposal")
	rec := testutil.NewRecorder()
	h.HandleSetDeadline(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestWriteEndpoints_RequireWritePermission(t *testing.T) {
	h, _ := newTestHandler(t)
	router := admin.Routes(h)

	req := testutil.NewJSONRequest(http.MethodPut, "/deadlines/proposal",
		map[string]any{"due": time.Now().UTC().Add(24 * time.Hour)})
	req = asAdmin(req, testutil.ReadOnlyAdminUser())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "write permission required")
}

func TestAdminAccounts_RequireSuperAdmin(t *testing.T) {
	h, _ := newTestHandler(t)
	router := admin.Routes(h)

	// A write-permission admin still cannot touch admin accounts.
	req := asAdmin(testutil.NewRequest(http.MethodGet, "/admins"), testutil.AdminUser())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)

	req = asAdmin(testutil.NewRequest(http.MethodGet, "/admins"), testutil.SuperAdminUser())
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
}

func TestDecideExtension_ApproveThenConflict(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := f.CreateStudent(ctx, "Ada Student", "ada@test.edu", "fa21-001")
	sup := f.CreateSupervisor(ctx, "Dr. Super", "super@test.edu", 3)
	proj := f.CreatePendingProject(ctx, "Compiler Project", st.ID, sup.ID)
	group := f.CreateGroup(ctx, "Compiler Project", sup.ID, proj.ID, st.ID)

	until := time.Now().UTC().Add(10 * 24 * time.Hour).Truncate(time.Second)
	ext, err := h.Extensions.Create(ctx, models.Extension{
		GroupID:   group.ID,
		StudentID: st.ID,
		Kind:      models.DeadlineProposal,
		Reason:    "hardware delays",
		Until:     until,
	})
	if err != nil {
		t.Fatalf("create extension: %v", err)
	}

	decide := func() *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(http.MethodPut, "/admin/extensions/"+ext.ID.Hex(),
			map[string]any{"status": "approved"})
		req = testutil.WithChiURLParam(asAdmin(req, testutil.AdminUser()), "id", ext.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleDecideExtension(rec, req)
		return rec
	}

	rec := decide()
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Extension models.Extension `json:"extension"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.Extension.Status != models.ExtensionApproved {
		t.Errorf("status: got %q, want approved", resp.Extension.Status)
	}

	// The student hears about the decision.
	updated, err := h.Students.GetByID(ctx, st.ID)
	if err != nil {
		t.Fatalf("reload student: %v", err)
	}
	if len(updated.Notifications.Unseen) == 0 {
		t.Errorf("expected a notification for the student")
	}

	// Second decision is refused.
	decide().AssertStatus(t, http.StatusConflict)
}

func TestScheduleViva_OnePerGroup(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := f.CreateStudent(ctx, "Ada Student", "ada@test.edu", "fa21-001")
	sup := f.CreateSupervisor(ctx, "Dr. Super", "super@test.edu", 3)
	proj := f.CreatePendingProject(ctx, "Robotics Project", st.ID, sup.ID)
	group := f.CreateGroup(ctx, "Robotics Project", sup.ID, proj.ID, st.ID)
	ext := f.CreateExternal(ctx, "Prof. Outside", "outside@other.edu")

	schedule := func() *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(http.MethodPost, "/admin/vivas", map[string]any{
			"group_id":     group.ID.Hex(),
			"external_id":  ext.ID.Hex(),
			"scheduled_at": time.Now().UTC().Add(14 * 24 * time.Hour),
			"venue":        "Seminar Room B",
		})
		rec := testutil.NewRecorder()
		h.HandleScheduleViva(rec, asAdmin(req, testutil.AdminUser()))
		return rec
	}

	schedule().AssertStatus(t, http.StatusCreated)
	schedule().AssertStatus(t, http.StatusConflict)

	// The group's students get a reminder.
	updated, err := h.Students.GetByID(ctx, st.ID)
	if err != nil {
		t.Fatalf("reload student: %v", err)
	}
	found := false
	for _, n := range updated.Notifications.Unseen {
		if n.Type == models.NotifyReminder {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a reminder notification for the group's students")
	}
}

func TestCompleteViva_RecordsMark(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := f.CreateStudent(ctx, "Ada Student", "ada@test.edu", "fa21-001")
	sup := f.CreateSupervisor(ctx, "Dr. Super", "super@test.edu", 3)
	proj := f.CreatePendingProject(ctx, "Drone Project", st.ID, sup.ID)
	group := f.CreateGroup(ctx, "Drone Project", sup.ID, proj.ID, st.ID)
	ext := f.CreateExternal(ctx, "Prof. Outside", "outside@other.edu")

	viva, err := h.Vivas.Create(ctx, models.Viva{
		GroupID:     group.ID,
		ExternalID:  ext.ID,
		ScheduledAt: time.Now().UTC().Add(24 * time.Hour),
		Venue:       "Seminar Room B",
	})
	if err != nil {
		t.Fatalf("create viva: %v", err)
	}

	// A mark without the completed status is refused.
	req := testutil.NewJSONRequest(http.MethodPut, "/admin/vivas/"+viva.ID.Hex()+"/status",
		map[string]any{"status": "cancelled", "mark": 70})
	req = testutil.WithChiURLParam(asAdmin(req, testutil.AdminUser()), "id", viva.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleSetVivaStatus(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)

	req = testutil.NewJSONRequest(http.MethodPut, "/admin/vivas/"+viva.ID.Hex()+"/status",
		map[string]any{"status": "completed", "mark": 78})
	req = testutil.WithChiURLParam(asAdmin(req, testutil.AdminUser()), "id", viva.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleSetVivaStatus(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	updatedViva, err := h.Vivas.GetByID(ctx, viva.ID)
	if err != nil {
		t.Fatalf("reload viva: %v", err)
	}
	if updatedViva.Status != models.VivaCompleted {
		t.Errorf("status: got %q, want completed", updatedViva.Status)
	}

	updatedGroup, err := h.Groups.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	if updatedGroup.Marks.Viva != 78 {
		t.Errorf("viva mark: got %d, want 78", updatedGroup.Marks.Viva)
	}
}

func TestImportStudents_ReportsDuplicates(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateStudent(ctx, "Existing Student", "existing@test.edu", "fa21-900")

	csv := "full_name,email,roll_no\n" +
		"New Student,new@test.edu,fa21-901\n" +
		"Clash Student,existing@test.edu,fa21-902\n"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "students.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(csv)); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/students/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := testutil.NewRecorder()
	h.HandleImportStudents(rec, asAdmin(req, testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Imported int `json:"imported"`
		Errors   []struct {
			Line   int    `json:"line"`
			Reason string `json:"reason"`
		} `json:"errors"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.Imported != 1 {
		t.Errorf("imported: got %d, want 1", resp.Imported)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Line != 3 {
		t.Errorf("expected one error on line 3, got %+v", resp.Errors)
	}

	// The new account exists with a usable password hash.
	created, err := h.Students.GetByEmail(ctx, "new@test.edu")
	if err != nil {
		t.Fatalf("imported student missing: %v", err)
	}
	if created.PasswordHash == "" {
		t.Errorf("imported student has no password hash")
	}
	raw, _ := json.Marshal(created)
	if bytes.Contains(raw, []byte("password_hash")) {
		t.Errorf("password hash leaks through JSON")
	}
}
