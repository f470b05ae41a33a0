package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/jzq1291/chatbot/internal/core"
	"github.com/jzq1291/chatbot/pkg/log"
)

type emitterState int

const (
	stateOpen emitterState = iota
	stateSending
	stateDone
	stateFailed
)

// Emitter delivers a generated reply to a sink as an ordered sequence of
// chunk events followed by one terminal done or error event.
//
// A failed chunk send aborts further delivery: one error event is attempted
// and the stream is closed without a done event. The lenient
// continue-after-failure behavior some emitters use is deliberately not
// reproduced here; the receiver is presumed gone after the first failure.
type Emitter struct {
	sink      core.StreamSink
	chunkSize int
	delay     time.Duration
	state     emitterState
}

func NewEmitter(sink core.StreamSink, chunkSize int, delay time.Duration) *Emitter {
	if chunkSize < 1 {
		chunkSize = 1
	}
	return &Emitter{
		sink:      sink,
		chunkSize: chunkSize,
		delay:     delay,
	}
}

// EmitChunks sends the reply in rune chunks of the configured size, pausing
// between chunks so delivery is visibly incremental. It stops on the first
// send failure or when ctx is done.
func (e *Emitter) EmitChunks(ctx context.Context, reply string) error {
	e.state = stateSending

	runes := []rune(reply)
	for start := 0; start < len(runes); start += e.chunkSize {
		end := min(start+e.chunkSize, len(runes))

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stream cancelled: %w", err)
		}
		if err := e.sink.Send(core.StreamEvent{Type: core.EventChunk, Data: string(runes[start:end])}); err != nil {
			return fmt.Errorf("chunk send failed: %w", err)
		}

		if e.delay > 0 && end < len(runes) {
			select {
			case <-ctx.Done():
				return fmt.Errorf("stream cancelled: %w", ctx.Err())
			case <-time.After(e.delay):
			}
		}
	}
	return nil
}

// Done emits the terminal completion event and closes the stream. It is a
// no-op once the stream reached a terminal state.
func (e *Emitter) Done() error {
	if e.state == stateDone || e.state == stateFailed {
		return nil
	}
	e.state = stateDone
	return e.sink.Send(core.StreamEvent{Type: core.EventDone, Data: core.DoneData})
}

// Fail emits a best-effort error event and closes the stream. A failure to
// send the error event itself is swallowed; the remote side is gone.
func (e *Emitter) Fail(err error) {
	if e.state == stateDone || e.state == stateFailed {
		return
	}
	e.state = stateFailed
	_ = e.sink.Send(core.StreamEvent{Type: core.EventError, Data: err.Error()})
}

// StreamMessage handles one streaming turn. All failures surface as a
// single error event on the sink; a done event is emitted only after the
// full reply was delivered and persisted.
func (s *Service) StreamMessage(ctx context.Context, req Request, sink core.StreamSink) {
	logger := log.FromCtx(ctx)
	emitter := NewEmitter(sink, s.cfg.StreamChunkSize, s.cfg.StreamDelay)

	sessionID := resolveSessionID(req.SessionID)
	modelID, provider, err := s.resolveModel(req.ModelID)
	if err != nil {
		emitter.Fail(err)
		return
	}

	text := CleanInput(req.Text)

	window, err := s.buildContext(ctx, sessionID, text)
	if err != nil {
		emitter.Fail(err)
		return
	}

	if err := s.messages.Append(ctx, sessionID, core.RoleUser, text); err != nil {
		emitter.Fail(fmt.Errorf("failed to save user message: %w", err))
		return
	}

	reply, err := provider.Complete(ctx, window)
	if err != nil {
		emitter.Fail(fmt.Errorf("completion failed: %w", err))
		return
	}
	reply = StripReasoning(reply)

	deliveryErr := emitter.EmitChunks(ctx, reply)
	if deliveryErr != nil {
		logger.Warn().Err(deliveryErr).Str("session", sessionID).Msg("stream delivery aborted")
	}

	// The generated reply is persisted for conversation continuity even
	// when the client went away mid-stream.
	if err := s.messages.Append(context.WithoutCancel(ctx), sessionID, core.RoleAssistant, reply); err != nil {
		emitter.Fail(fmt.Errorf("failed to save assistant message: %w", err))
		return
	}

	if deliveryErr != nil {
		emitter.Fail(deliveryErr)
		return
	}

	if err := emitter.Done(); err != nil {
		logger.Warn().Err(err).Str("session", sessionID).Msg("failed to send done event")
		return
	}

	logger.Info().
		Str("session", sessionID).
		Str("model", modelID).
		Int("reply_len", len(reply)).
		Msg("streaming turn completed")
}
