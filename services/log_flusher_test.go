package services

import (
	"encoding/json"
	"testing"

	"srms_go/models"
)

func TestDecodeCachedLog(t *testing.T) {
	original := models.ActivityLog{
		UserID:     7,
		Action:     "CREATE",
		Resource:   "payments",
		ResourceID: 42,
		Details:    models.JSON(`{"amount":500000}`),
		IPAddress:  "10.0.0.1",
		UserAgent:  "test-agent",
	}

	// Round-trip through the same encoding LogActivity caches with
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	decoded, err := decodeCachedLog(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded.UserID != original.UserID || decoded.Action != original.Action {
		t.Fatalf("decoded log does not match original: %+v", decoded)
	}
	if decoded.Resource != original.Resource || decoded.ResourceID != original.ResourceID {
		t.Fatalf("decoded resource fields do not match: %+v", decoded)
	}
	if string(decoded.Details) != string(original.Details) {
		t.Fatalf("details lost in round trip: %s", decoded.Details)
	}
}

func TestDecodeCachedLogInvalid(t *testing.T) {
	if _, err := decodeCachedLog([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed cache entry")
	}
}
