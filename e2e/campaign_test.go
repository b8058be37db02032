package e2e

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

// sseEvent is one decoded server-sent event.
type sseEvent struct {
	Type       string                   `json:"type"`
	Percentage int                      `json:"percentage"`
	Message    string                   `json:"message,omitempty"`
	Item       map[string]interface{}   `json:"item,omitempty"`
	Items      []map[string]interface{} `json:"items,omitempty"`
}

func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	for _, chunk := range strings.Split(body, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if !strings.HasPrefix(chunk, "data: ") {
			t.Fatalf("malformed SSE chunk: %q", chunk)
		}
		var ev sseEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(chunk, "data: ")), &ev); err != nil {
			t.Fatalf("failed to decode SSE event: %v\nchunk: %s", err, chunk)
		}
		events = append(events, ev)
	}
	return events
}

func TestGenerate_NoToken(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodPost, "/api/campaigns/generate", `{"brandName":"Acme","platforms":["twitter"]}`, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusUnauthorized)
}

func TestGenerate_MissingBrandName(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/campaigns/generate", `{"platforms":["twitter"]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)

	body := parseJSON(t, resp)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected error object")
	}
	if errObj["code"] != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %v", errObj["code"])
	}
}

func TestGenerate_EmptyPlatforms(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/campaigns/generate", `{"brandName":"Acme","platforms":[]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestGenerate_UnsupportedPlatform(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/campaigns/generate", `{"brandName":"Acme","platforms":["myspace"]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)

	body := parseJSON(t, resp)
	errObj := body["error"].(map[string]interface{})
	if !strings.Contains(errObj["message"].(string), "myspace") {
		t.Errorf("expected the offending platform to be named, got %v", errObj["message"])
	}
}

func TestGenerate_StreamsFullCampaign(t *testing.T) {
	ta := setupApp(t)

	payload := `{
		"brandName": "Acme",
		"brandDescription": "Rocket-powered gadgets",
		"tone": "playful",
		"callToAction": "Try it today",
		"platforms": ["twitter", "linkedin"]
	}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/campaigns/generate", payload)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected SSE content type, got %q", ct)
	}

	events := parseSSE(t, readBody(t, resp))
	if len(events) == 0 {
		t.Fatal("expected at least one event")
	}

	first := events[0]
	if first.Type != "progress" || first.Percentage != 0 {
		t.Errorf("stream must open with a 0%% progress event, got %+v", first)
	}

	last := events[len(events)-1]
	if last.Type != "complete" || last.Percentage != 100 {
		t.Errorf("stream must end with a 100%% complete event, got %+v", last)
	}

	// No video credential: twitter yields text+image, linkedin text+image.
	if len(last.Items) != 4 {
		t.Errorf("expected 4 items in the complete event, got %d", len(last.Items))
	}

	prev := -1
	contentCount := 0
	for _, ev := range events {
		if ev.Percentage < prev {
			t.Fatalf("percentage went backwards: %d after %d", ev.Percentage, prev)
		}
		prev = ev.Percentage

		if ev.Type == "content" {
			contentCount++
			if ev.Item == nil {
				t.Error("content event without an item")
				continue
			}
			if ev.Item["status"] != "complete" {
				t.Errorf("expected complete item, got %v", ev.Item["status"])
			}
		}
	}
	if contentCount != 4 {
		t.Errorf("expected 4 content events, got %d", contentCount)
	}
}

func TestGenerate_MultiModelVariations(t *testing.T) {
	ta := setupApp(t)

	payload := `{
		"brandName": "Acme",
		"platforms": ["linkedin"],
		"multiModel": true,
		"models": ["openai/gpt-4o-mini", "anthropic/claude-3.5-haiku"]
	}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/campaigns/generate", payload)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	events := parseSSE(t, readBody(t, resp))
	var textItem map[string]interface{}
	for _, ev := range events {
		if ev.Type == "content" && ev.Item["kind"] == "text" {
			textItem = ev.Item
			break
		}
	}
	if textItem == nil {
		t.Fatal("expected a text content event")
	}

	variations, ok := textItem["variations"].([]interface{})
	if !ok {
		t.Fatal("expected variations on multi-model text item")
	}
	if len(variations) != 2 {
		t.Errorf("expected one variation per requested model, got %d", len(variations))
	}
}
