package httpjson_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
)

func TestError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Error(rec, 409, "slots full")

	if rec.Code != 409 {
		t.Errorf("status: got %d, want 409", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body.Success || body.Message != "slots full" {
		t.Errorf("unexpected envelope: %+v", body)
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Smart Campus"}`))
		var p payload
		if err := httpjson.Decode(r, &p, 1<<20); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if p.Title != "Smart Campus" {
			t.Errorf("Title: got %q", p.Title)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"titel":"typo"}`))
		var p payload
		if err := httpjson.Decode(r, &p, 1<<20); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("trailing garbage", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"a"}{"title":"b"}`))
		var p payload
		if err := httpjson.Decode(r, &p, 1<<20); err == nil {
			t.Error("expected error for trailing garbage")
		}
	})

	t.Run("too large", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"`+strings.Repeat("x", 100)+`"}`))
		var p payload
		if err := httpjson.Decode(r, &p, 16); err == nil {
			t.Error("expected error for oversized body")
		}
	})
}
