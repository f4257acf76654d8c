package logger

import "testing"

func TestSanitizePayloadMasksSensitiveKeys(t *testing.T) {
	payload := map[string]any{
		"password":      "secret",
		"password_hash": "hash",
		"Password-Hash": "hash",
		"PIN":           "1234",
		"accountId":     int64(7),
		"nested": map[string]any{
			"passwordHash": "hash",
			"amount":       "100.00",
		},
	}

	sanitized, ok := SanitizePayload(payload).(map[string]any)
	if !ok {
		t.Fatalf("expected map payload, got %T", SanitizePayload(payload))
	}

	for _, key := range []string{"password", "password_hash", "Password-Hash", "PIN"} {
		if sanitized[key] != "******" {
			t.Errorf("expected %q to be masked, got %v", key, sanitized[key])
		}
	}
	if sanitized["accountId"] == "******" {
		t.Error("accountId must not be masked")
	}

	nested, ok := sanitized["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", sanitized["nested"])
	}
	if nested["passwordHash"] != "******" {
		t.Errorf("expected nested passwordHash to be masked, got %v", nested["passwordHash"])
	}
	if nested["amount"] != "100.00" {
		t.Errorf("expected nested amount to pass through, got %v", nested["amount"])
	}
}
