package reservation

// Status is the shipment lifecycle state of a reservation.
//
// Lifecycle:
//
//	pending_submission -> received_at_origin -> in_transit -> arrived_at_destination -> delivered
//
// pending_submission is set at creation; delivered is terminal.
type Status string

const (
	StatusPendingSubmission    Status = "pending_submission"
	StatusReceivedAtOrigin     Status = "received_at_origin"
	StatusInTransit            Status = "in_transit"
	StatusArrivedAtDestination Status = "arrived_at_destination"
	StatusDelivered            Status = "delivered"
)

const InitialStatus = StatusPendingSubmission

var lifecycle = []Status{
	StatusPendingSubmission,
	StatusReceivedAtOrigin,
	StatusInTransit,
	StatusArrivedAtDestination,
	StatusDelivered,
}

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	out := make([]Status, len(lifecycle))
	copy(out, lifecycle)
	return out
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s.position() >= 0
}

func (s Status) IsInitial() bool {
	return s == InitialStatus
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}

// Next returns the immediate successor; false for the terminal status.
func (s Status) Next() (Status, bool) {
	i := s.position()
	if i < 0 || i == len(lifecycle)-1 {
		return "", false
	}
	return lifecycle[i+1], true
}

func (s Status) position() int {
	for i, st := range lifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

// TransitionPolicy decides which status changes an administrator may make.
type TransitionPolicy string

const (
	// PolicyLinear only allows the immediate successor.
	PolicyLinear TransitionPolicy = "linear"
	// PolicyPermissive allows any known status, including skips and moves back.
	PolicyPermissive TransitionPolicy = "permissive"
)

func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch p := TransitionPolicy(s); p {
	case PolicyLinear, PolicyPermissive:
		return p, nil
	default:
		return "", ErrInvalidTransitionPolicy
	}
}

// Allows is only consulted for actual changes; a same-status request is a no-op upstream.
func (p TransitionPolicy) Allows(from, to Status) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if p == PolicyPermissive {
		return nil
	}
	next, ok := from.Next()
	if !ok || next != to {
		return ErrInvalidTransition
	}
	return nil
}
