package formwork

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func sampleIssues() Issues {
	return Issues{
		{Path: Path{}.Field("name"), Code: CodeTooSmall, Message: "too short"},
		{Path: Path{}.Field("age"), Code: CodeTooSmall, Message: "must be >= 0"},
	}
}

func TestIssues_ImplementsError(t *testing.T) {
	var err error = sampleIssues()
	msg := err.Error()
	if !strings.Contains(msg, "too_small at /name") {
		t.Fatalf("unexpected summary: %q", msg)
	}
}

func TestIssues_ErrorTruncation(t *testing.T) {
	iss := Issues{}
	for i := 0; i < 5; i++ {
		iss = append(iss, Issue{Path: Path{}.Index(i), Code: CodeInvalidType})
	}
	msg := iss.Error()
	if !strings.Contains(msg, "(total 5)") {
		t.Fatalf("expected truncation marker, got %q", msg)
	}
}

func TestAsIssues(t *testing.T) {
	iss, ok := AsIssues(error(sampleIssues()))
	if !ok || len(iss) != 2 {
		t.Fatalf("extract failed: ok=%v n=%d", ok, len(iss))
	}
	if _, ok := AsIssues(errors.New("boom")); ok {
		t.Fatalf("plain error must not extract")
	}
	if _, ok := AsIssues(nil); ok {
		t.Fatalf("nil must not extract")
	}
}

func TestNewValidationError_Aggregate(t *testing.T) {
	ve := NewValidationError(sampleIssues())
	if ve.Code != ValidationErrorCode {
		t.Fatalf("code: got %q", ve.Code)
	}
	if ve.Field != "/name" || ve.Message != "too short" {
		t.Fatalf("first-issue projection: field=%q msg=%q", ve.Field, ve.Message)
	}
	if got := ve.First().Code; got != CodeTooSmall {
		t.Fatalf("First: got %q", got)
	}
	byField := ve.IssuesByField()
	if len(byField["/name"]) != 1 || len(byField["/age"]) != 1 {
		t.Fatalf("grouping: %v", byField)
	}
}

func TestNewValidationError_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on empty issue list")
		}
	}()
	NewValidationError(nil)
}

// The serialized shape is consumed by HTTP clients; keep it frozen.
func TestValidationError_WireShape(t *testing.T) {
	ve := NewValidationError(Issues{{
		Path:     Path{}.Field("user").Field("email"),
		Code:     CodeInvalidEmail,
		Message:  "invalid email",
		Received: "string",
	}})
	raw, err := json.Marshal(ve)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"code":"VALIDATION_ERROR","message":"invalid email","field":"/user/email",` +
		`"fieldPath":["user","email"],"issues":[{"path":["user","email"],` +
		`"message":"invalid email","code":"invalid_email","received":"string"}]}`
	if string(raw) != want {
		t.Fatalf("wire shape drifted:\n got %s\nwant %s", raw, want)
	}
}

// Issues raised at the root carry a nil Path; the wire shape still requires
// arrays, never null.
func TestValidationError_WireShape_RootPath(t *testing.T) {
	ve := NewValidationError(Issues{{
		Code:     CodeInvalidType,
		Message:  "invalid type",
		Expected: "string",
		Received: "number",
	}})
	raw, err := json.Marshal(ve)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"code":"VALIDATION_ERROR","message":"invalid type","fieldPath":[],` +
		`"issues":[{"path":[],"message":"invalid type","code":"invalid_type",` +
		`"expected":"string","received":"number"}]}`
	if string(raw) != want {
		t.Fatalf("root-path wire shape drifted:\n got %s\nwant %s", raw, want)
	}
}
