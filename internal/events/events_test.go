package events

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func TestLogPublisherWritesEventName(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	p.Publish(context.Background(), HouseholdCreated{ID: NewID(), HouseholdID: 3, Name: "Smiths", CreatedBy: 1, At: time.Now()})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON log line: %v", err)
	}
	if line["event"] != "household.created" {
		t.Fatalf("unexpected event name: %v", line["event"])
	}
	payload, ok := line["payload"].(map[string]any)
	if !ok || payload["name"] != "Smiths" {
		t.Fatalf("unexpected payload: %v", line["payload"])
	}
}

func TestNewIDIsUnique(t *testing.T) {
	if NewID() == NewID() {
		t.Fatalf("expected distinct event ids")
	}
}
