package core

// StreamEventType tags an event on a streaming reply.
type StreamEventType string

const (
	EventChunk StreamEventType = "chunk"
	EventError StreamEventType = "error"
	EventDone  StreamEventType = "done"
)

// DoneData is the payload of the terminal done event.
const DoneData = "[DONE]"

// StreamEvent is one unit of an incremental reply delivery.
type StreamEvent struct {
	Type StreamEventType `json:"type"`
	Data string          `json:"data"`
}

// StreamSink receives stream events in order. Send returns an error when
// the receiving side is gone; the emitter treats that as fatal for the
// stream but not for the turn.
type StreamSink interface {
	Send(event StreamEvent) error
}
