package playback

// EventKind identifies what happened to the playback session.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventEnded
	EventError
	EventLoopArmed
	EventLoopDisarmed
	EventLoopWrapped
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	case EventLoopArmed:
		return "loop armed"
	case EventLoopDisarmed:
		return "loop disarmed"
	case EventLoopWrapped:
		return "loop wrapped"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers synchronously on the goroutine that
// caused it. Session is the state right after the change.
type Event struct {
	Kind    EventKind
	Session Session
	Err     error
}

// Subscribe registers fn to receive every future event.
func (c *Controller) Subscribe(fn func(Event)) {
	c.subscribers = append(c.subscribers, fn)
}

func (c *Controller) emit(kind EventKind, err error) {
	event := Event{Kind: kind, Session: c.session, Err: err}
	for _, fn := range c.subscribers {
		fn(event)
	}
}
