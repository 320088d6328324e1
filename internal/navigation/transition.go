package navigation

// Status is the closed set of navigation states. Exactly one is active.
type Status int

const (
	Idle Status = iota
	Navigating
	Arrived
	OffRoute
	GpsLost
)

// String returns the display form of the status.
func (s Status) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Navigating:
		return "NAVIGATING"
	case Arrived:
		return "ARRIVED"
	case OffRoute:
		return "OFF ROUTE"
	case GpsLost:
		return "GPS LOST"
	default:
		return "UNKNOWN"
	}
}

// Event is a stimulus that may move the state machine to a new status.
type Event int

const (
	// EventDestinationSet fires when the destination is replaced.
	EventDestinationSet Event = iota
	// EventNavigationStarted fires when guidance begins.
	EventNavigationStarted
	// EventNavigationStopped fires when guidance is cancelled.
	EventNavigationStopped
	// EventDestinationReached fires when the vehicle comes within the
	// arrival threshold of the destination.
	EventDestinationReached
	// EventSignalLost fires when the fix transitions usable to unusable.
	EventSignalLost
	// EventSignalRestored fires when the fix transitions unusable to usable.
	EventSignalRestored
)

// Transition applies an event to the current status and returns the next
// status plus whether the status actually changed. It is a pure function;
// all precondition checks (valid destination, usable fix) happen before an
// event is raised.
//
//	Idle       --EventNavigationStarted--> Navigating
//	Navigating --EventDestinationReached--> Arrived
//	Navigating --EventSignalLost--> GpsLost
//	GpsLost    --EventSignalRestored--> Navigating
//	(any)      --EventNavigationStopped--> Idle
//	(any)      --EventDestinationSet--> Idle
//
// OffRoute has no producing edge; it is accepted as an input state so a
// stop or destination change still resets it.
func Transition(current Status, event Event) (Status, bool) {
	next := current

	switch event {
	case EventDestinationSet, EventNavigationStopped:
		next = Idle
	case EventNavigationStarted:
		next = Navigating
	case EventDestinationReached:
		if current == Navigating {
			next = Arrived
		}
	case EventSignalLost:
		if current == Navigating {
			next = GpsLost
		}
	case EventSignalRestored:
		if current == GpsLost {
			next = Navigating
		}
	}

	return next, next != current
}
