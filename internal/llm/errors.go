package llm

import "fmt"

// TransportError reports a failed exchange with the completion endpoint:
// a connection or timeout failure (Status 0) or a non-2xx HTTP status.
type TransportError struct {
	Status  int    // HTTP status, 0 when the call never completed
	Type    string // upstream error type, when the body carried one
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("llmclient: request failed: %v", e.Err)
	case e.Type != "":
		return fmt.Sprintf("llmclient: upstream %d: %s (%s)", e.Status, e.Message, e.Type)
	default:
		return fmt.Sprintf("llmclient: upstream %d: %s", e.Status, e.Message)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a 2xx response whose body could not be used: malformed
// JSON or a payload with no choices. It propagates like a TransportError so
// one bad turn does not end an interactive session.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llmclient: %s: %v", e.Message, e.Err)
	}
	return "llmclient: " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }
