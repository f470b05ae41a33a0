package httpapi

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jzq1291/chatbot/internal/core"
)

// sseSink writes stream events as server-sent events and flushes after
// each one so delivery is incremental.
type sseSink struct {
	resp *echo.Response
}

func newSSESink(resp *echo.Response) *sseSink {
	return &sseSink{resp: resp}
}

func (s *sseSink) Send(event core.StreamEvent) error {
	if _, err := fmt.Fprintf(s.resp, "event: %s\n", event.Type); err != nil {
		return err
	}
	// A data payload may contain newlines; each line needs its own field.
	for _, line := range strings.Split(event.Data, "\n") {
		if _, err := fmt.Fprintf(s.resp, "data: %s\n", line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(s.resp, "\n"); err != nil {
		return err
	}
	s.resp.Flush()
	return nil
}
