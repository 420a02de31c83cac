// Package daemon runs the pomodoro timer: one reducer goroutine owns the
// timer state and consumes events produced by the ticker and the socket
// server.
package daemon

// Event is implemented by Toggle, Reset, Status and Tick.
type Event interface {
	event()
}

// Toggle starts, pauses or resumes the work session.
type Toggle struct{}

// Reset returns the timer to idle and clears the cycle count.
type Reset struct{}

// Status asks for the current state. The dispatcher sends exactly one
// encoded reply on Reply, which must have spare capacity.
type Status struct {
	Reply chan<- []byte
}

// Tick asks the dispatcher to finish a timed state whose time ran out.
type Tick struct{}

func (Toggle) event() {}
func (Reset) event()  {}
func (Status) event() {}
func (Tick) event()   {}

// NewStatus returns a Status event and the channel its reply arrives on.
func NewStatus() (Status, <-chan []byte) {
	reply := make(chan []byte, 1)
	return Status{Reply: reply}, reply
}

// Command is a client request token.
type Command string

// Tokens understood by the daemon. Anything else is a status query.
const (
	CommandToggle Command = "toggle"
	CommandReset  Command = "reset"
	CommandStatus Command = "status"
)

// ParseCommand maps raw request text onto a command. Only the exact tokens
// "toggle" and "reset" change state; every other input, including empty or
// malformed text, reads the status.
func ParseCommand(raw string) Command {
	switch Command(raw) {
	case CommandToggle:
		return CommandToggle
	case CommandReset:
		return CommandReset
	default:
		return CommandStatus
	}
}
