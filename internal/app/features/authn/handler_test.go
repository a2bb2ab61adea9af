package authn_test

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/features/authn"
	"github.com/capstonehub/capstonehub/internal/app/system/auth"
	"github.com/capstonehub/capstonehub/internal/testutil"
)

func newTestHandler(t *testing.T) *authn.Handler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	tokens, err := auth.NewTokenManager(
		"0123456789abcdef0123456789abcdef", "test-token", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("token manager init failed: %v", err)
	}
	return authn.NewHandler(db, tokens, zap.NewNop())
}

func TestRegisterThenLogin(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewJSONRequest("POST", "/auth/register", map[string]string{
		"full_name": "Ada Student",
		"email":     "Ada@Uni.EDU",
		"roll_no":   "fa21-001",
		"password":  "correct horse battery",
	})
	rec := testutil.NewRecorder()
	h.HandleRegister(rec, req)
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "ada@uni.edu")

	// Login with the registered credentials.
	req = testutil.NewJSONRequest("POST", "/auth/login", map[string]string{
		"email":    "ada@uni.edu",
		"password": "correct horse battery",
		"role":     "student",
	})
	rec = testutil.NewRecorder()
	h.HandleLogin(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	cookies := rec.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "test-token" && c.Value != "" && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Error("expected an HttpOnly token cookie on successful login")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewJSONRequest("POST", "/auth/register", map[string]string{
		"full_name": "Bo Student",
		"email":     "bo@uni.edu",
		"roll_no":   "fa21-002",
		"password":  "the right password",
	})
	rec := testutil.NewRecorder()
	h.HandleRegister(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	req = testutil.NewJSONRequest("POST", "/auth/login", map[string]string{
		"email":    "bo@uni.edu",
		"password": "the wrong password",
		"role":     "student",
	})
	rec = testutil.NewRecorder()
	h.HandleLogin(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "invalid email or password")
}

func TestLogin_UnknownAccount(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewJSONRequest("POST", "/auth/login", map[string]string{
		"email":    "nobody@uni.edu",
		"password": "whatever",
		"role":     "supervisor",
	})
	rec := testutil.NewRecorder()
	h.HandleLogin(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newTestHandler(t)

	payload := map[string]string{
		"full_name": "First Student",
		"email":     "dup@uni.edu",
		"roll_no":   "fa21-003",
		"password":  "some password",
	}
	rec := testutil.NewRecorder()
	h.HandleRegister(rec, testutil.NewJSONRequest("POST", "/auth/register", payload))
	rec.AssertStatus(t, http.StatusCreated)

	payload["roll_no"] = "fa21-004"
	rec = testutil.NewRecorder()
	h.HandleRegister(rec, testutil.NewJSONRequest("POST", "/auth/register", payload))
	rec.AssertStatus(t, http.StatusConflict)
}

func TestMe_RequiresUser(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleMe(rec, testutil.NewRequest("GET", "/auth/me"))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest("GET", "/auth/me", testutil.StudentUser())
	h.HandleMe(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "student@test.edu")
}
