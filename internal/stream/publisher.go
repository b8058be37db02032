package stream

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"

	"github.com/brandwave/api/internal/model"
)

// Publisher receives the ordered event stream of one orchestration run.
// Implementations are best-effort: a disconnected consumer must never be
// surfaced to the orchestrator as a pipeline failure.
type Publisher interface {
	Progress(percentage int, message string)
	Content(item model.GeneratedContentItem, percentage int)
	Complete(items []model.GeneratedContentItem)
}

// SSEWriter serializes events onto a server-sent-events response body:
// each event as `data: <json>` terminated by a blank line, flushed
// immediately. Write errors mean the client went away; they are logged and
// dropped so the run keeps going.
type SSEWriter struct {
	w *bufio.Writer
}

func NewSSEWriter(w *bufio.Writer) *SSEWriter {
	return &SSEWriter{w: w}
}

func (s *SSEWriter) Progress(percentage int, message string) {
	s.send(model.ProgressEvent{
		Type:       model.EventTypeProgress,
		Percentage: percentage,
		Message:    message,
	})
}

func (s *SSEWriter) Content(item model.GeneratedContentItem, percentage int) {
	s.send(model.ProgressEvent{
		Type:       model.EventTypeContent,
		Percentage: percentage,
		Item:       &item,
	})
}

func (s *SSEWriter) Complete(items []model.GeneratedContentItem) {
	s.send(model.ProgressEvent{
		Type:       model.EventTypeComplete,
		Percentage: 100,
		Items:      items,
	})
}

func (s *SSEWriter) send(ev model.ProgressEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal stream event: %v", err)
		return
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		log.Printf("Stream write failed (client gone?): %v", err)
		return
	}
	if err := s.w.Flush(); err != nil {
		log.Printf("Stream flush failed (client gone?): %v", err)
	}
}
