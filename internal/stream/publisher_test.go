package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/brandwave/api/internal/model"
)

// decodeEvents parses an SSE body into its event payloads.
func decodeEvents(t *testing.T, body string) []model.ProgressEvent {
	t.Helper()
	var events []model.ProgressEvent
	for _, chunk := range strings.Split(body, "\n\n") {
		if chunk == "" {
			continue
		}
		if !strings.HasPrefix(chunk, "data: ") {
			t.Fatalf("malformed SSE chunk: %q", chunk)
		}
		var ev model.ProgressEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(chunk, "data: ")), &ev); err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		events = append(events, ev)
	}
	return events
}

func TestSSEWriter_Framing(t *testing.T) {
	var buf bytes.Buffer
	w := NewSSEWriter(bufio.NewWriter(&buf))

	w.Progress(0, "Starting")
	w.Progress(33, "Generating text for twitter...")

	body := buf.String()
	if !strings.HasPrefix(body, "data: ") {
		t.Errorf("expected data: prefix, got %q", body)
	}
	if strings.Count(body, "\n\n") != 2 {
		t.Errorf("each event must be terminated by a blank line: %q", body)
	}

	events := decodeEvents(t, body)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != model.EventTypeProgress || events[0].Percentage != 0 {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Percentage != 33 || events[1].Message == "" {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

func TestSSEWriter_ContentCarriesItem(t *testing.T) {
	var buf bytes.Buffer
	w := NewSSEWriter(bufio.NewWriter(&buf))

	item := model.GeneratedContentItem{
		ID:       "item-1",
		Platform: model.PlatformTwitter,
		Kind:     model.ContentKindText,
		Status:   model.ItemStatusComplete,
		Content:  "hello",
	}
	w.Content(item, 33)

	events := decodeEvents(t, buf.String())
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != model.EventTypeContent {
		t.Errorf("expected content event, got %s", ev.Type)
	}
	if ev.Item == nil || ev.Item.ID != "item-1" || ev.Item.Content != "hello" {
		t.Errorf("item not carried through: %+v", ev.Item)
	}
}

func TestSSEWriter_CompleteIsAlwaysFull(t *testing.T) {
	var buf bytes.Buffer
	w := NewSSEWriter(bufio.NewWriter(&buf))

	w.Complete([]model.GeneratedContentItem{{ID: "a"}, {ID: "b"}})

	events := decodeEvents(t, buf.String())
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != model.EventTypeComplete {
		t.Errorf("expected complete event, got %s", ev.Type)
	}
	if ev.Percentage != 100 {
		t.Errorf("complete must report 100, got %d", ev.Percentage)
	}
	if len(ev.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(ev.Items))
	}
}
