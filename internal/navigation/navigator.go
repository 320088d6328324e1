package navigation

import (
	"context"
	"fmt"

	"infotainment-agent/pkg/notification"

	"github.com/rs/zerolog"
)

// arrivalThresholdKm is how close the vehicle must be to the destination,
// while navigating, to count as arrived.
const arrivalThresholdKm = 0.1

// Waypoint is a named stop on the route. Route order is insertion order.
type Waypoint struct {
	Coordinate Coordinate `json:"coordinate"`
	Name       string     `json:"name"`
	Address    string     `json:"address,omitempty"`
}

// DestinationResolver turns a street address into a coordinate. Implemented
// by pkg/geocode; injected so the navigator never talks to the network itself.
type DestinationResolver interface {
	Resolve(ctx context.Context, address string) (lat, lon float64, err error)
}

// Navigator owns the live navigation state: position, destination, route,
// fix quality and the status machine. It is driven synchronously by a single
// caller; it is not safe for concurrent mutation.
//
// Invalid input never mutates state: the offending operation emits a Warning
// (or Critical for missing-fix preconditions) through the notification sink
// and returns. Clamping of speed, satellites and accuracy is silent.
type Navigator struct {
	current         Coordinate
	destination     *Coordinate
	destinationName string
	route           []Waypoint
	status          Status
	speedKmh        float64
	headingDeg      float64
	signal          SignalState

	sink     notification.Notifier
	resolver DestinationResolver
	logger   zerolog.Logger
}

// NewNavigator creates a navigator at the origin with an initial healthy fix
// and no destination. The resolver may be nil when address lookup is not
// configured.
func NewNavigator(sink notification.Notifier, resolver DestinationResolver, logger zerolog.Logger) *Navigator {
	return &Navigator{
		status:   Idle,
		signal:   SignalState{Satellites: 8, AccuracyM: 3.0, Usable: true},
		sink:     sink,
		resolver: resolver,
		logger:   logger,
	}
}

// UpdateLocation records a new position sample. Invalid coordinates are
// rejected with a Warning and leave all state untouched. While navigating,
// coming within the arrival threshold of the destination transitions to
// Arrived.
func (n *Navigator) UpdateLocation(c Coordinate) {
	if !c.Valid() {
		n.sink.Notify("Invalid GPS coordinates received", notification.Warning)
		return
	}

	n.current = c
	n.applySignal(n.signal.Satellites, n.signal.AccuracyM)

	if n.status == Navigating {
		if d, ok := n.DistanceToDestination(); ok && d < arrivalThresholdKm {
			n.status, _ = Transition(n.status, EventDestinationReached)
			n.sink.Notify("Destination reached", notification.Info)
		}
	}
}

// SetDestination replaces the destination and cancels any navigation in
// progress. A destination change always resets the status to Idle.
func (n *Navigator) SetDestination(c Coordinate, name string) {
	if !c.Valid() {
		n.sink.Notify("Invalid destination coordinates", notification.Warning)
		return
	}
	if name == "" {
		name = "Destination"
	}

	dest := c
	n.destination = &dest
	n.destinationName = name
	n.status, _ = Transition(n.status, EventDestinationSet)

	n.sink.Notify(fmt.Sprintf("Destination set: %s (%s)", name, c), notification.Info)
}

// SetDestinationAddress geocodes a street address through the injected
// resolver and sets the result as the destination. Resolver failures are
// soft: a Warning is emitted and the current destination is kept.
func (n *Navigator) SetDestinationAddress(ctx context.Context, address string) {
	if n.resolver == nil {
		n.sink.Notify("Address lookup is not configured", notification.Warning)
		return
	}

	lat, lon, err := n.resolver.Resolve(ctx, address)
	if err != nil {
		n.logger.Warn().Err(err).Str("address", address).Msg("Failed to resolve destination address")
		n.sink.Notify(fmt.Sprintf("Could not find address: %s", address), notification.Warning)
		return
	}

	n.SetDestination(Coordinate{Latitude: lat, Longitude: lon}, address)
}

// StartNavigation begins guidance toward the current destination. It fails
// softly with a Warning when no destination is set and with a Critical alert
// when the fix is unusable.
func (n *Navigator) StartNavigation() {
	if n.destination == nil {
		n.sink.Notify("No destination set for navigation", notification.Warning)
		return
	}
	if !n.signal.Usable {
		n.sink.Notify("GPS signal unavailable - cannot start navigation", notification.Critical)
		return
	}

	n.status, _ = Transition(n.status, EventNavigationStarted)

	msg := "Navigation started"
	if d, ok := n.DistanceToDestination(); ok {
		msg = fmt.Sprintf("%s - Distance: %.1f km", msg, d)
		if eta, ok := n.ETAMinutes(); ok {
			msg = fmt.Sprintf("%s, ETA: %.0f min", msg, eta)
		}
	}
	n.sink.Notify(msg, notification.Info)
}

// StopNavigation returns to Idle and clears the route. Repeating it while
// already idle with an empty route is a no-op and emits nothing.
func (n *Navigator) StopNavigation() {
	changed := n.status != Idle || len(n.route) > 0

	n.status, _ = Transition(n.status, EventNavigationStopped)
	n.ClearRoute()

	if changed {
		n.sink.Notify("Navigation stopped", notification.Info)
	}
}

// AddWaypoint appends a waypoint to the route, preserving insertion order.
func (n *Navigator) AddWaypoint(w Waypoint) {
	if !w.Coordinate.Valid() {
		n.sink.Notify("Invalid waypoint coordinates", notification.Warning)
		return
	}

	n.route = append(n.route, w)
	n.sink.Notify(fmt.Sprintf("Waypoint added: %s", w.Name), notification.Info)
}

// ClearRoute drops all waypoints without emitting an event.
func (n *Navigator) ClearRoute() {
	n.route = nil
}

// UpdateSpeed stores the current speed, clamped to be non-negative.
func (n *Navigator) UpdateSpeed(kmh float64) {
	if kmh < 0 {
		kmh = 0
	}
	n.speedKmh = kmh
}

// UpdateHeading stores the current heading normalized into [0, 360).
func (n *Navigator) UpdateHeading(deg float64) {
	n.headingDeg = normalizeDegrees(deg)
}

// UpdateGPSSignal records new fix quality readings, clamped to be
// non-negative, and reacts to usability transitions.
func (n *Navigator) UpdateGPSSignal(satellites int, accuracyM float64) {
	n.applySignal(satellites, accuracyM)
}

// applySignal re-evaluates fix usability and drives the lost/restored
// transitions. Only a genuine usability change produces an event.
func (n *Navigator) applySignal(satellites int, accuracyM float64) {
	changed, usable := n.signal.update(satellites, accuracyM)
	if !changed {
		return
	}

	if usable {
		n.status, _ = Transition(n.status, EventSignalRestored)
		n.sink.Notify("GPS signal restored", notification.Info)
	} else {
		n.status, _ = Transition(n.status, EventSignalLost)
		n.sink.Notify("GPS signal lost", notification.Critical)
	}
}

// DistanceToDestination returns the great-circle distance to the destination
// in kilometers. The second return is false when no destination is set or
// the distance cannot be computed.
func (n *Navigator) DistanceToDestination() (float64, bool) {
	if n.destination == nil {
		return 0, false
	}
	d := Distance(n.current, *n.destination)
	if d < 0 {
		return 0, false
	}
	return d, true
}

// ETAMinutes estimates minutes to arrival from the current speed. The second
// return is false when the distance is unavailable or the vehicle is
// stationary.
func (n *Navigator) ETAMinutes() (float64, bool) {
	d, ok := n.DistanceToDestination()
	if !ok || n.speedKmh <= 0 {
		return 0, false
	}
	return d / n.speedKmh * 60, true
}

// BearingToDestination returns the initial bearing toward the destination in
// degrees [0, 360). The second return is false when no destination is set.
func (n *Navigator) BearingToDestination() (float64, bool) {
	if n.destination == nil || !n.current.Valid() || !n.destination.Valid() {
		return 0, false
	}
	return Bearing(n.current, *n.destination), true
}

// CurrentLocation returns the last accepted position.
func (n *Navigator) CurrentLocation() Coordinate { return n.current }

// Destination returns the destination and whether one has been set.
func (n *Navigator) Destination() (Coordinate, bool) {
	if n.destination == nil {
		return Coordinate{}, false
	}
	return *n.destination, true
}

// DestinationName returns the name given to the current destination.
func (n *Navigator) DestinationName() string { return n.destinationName }

// Status returns the current navigation status.
func (n *Navigator) Status() Status { return n.status }

// SpeedKmh returns the current speed in km/h.
func (n *Navigator) SpeedKmh() float64 { return n.speedKmh }

// HeadingDeg returns the current heading in degrees [0, 360).
func (n *Navigator) HeadingDeg() float64 { return n.headingDeg }

// Signal returns the current fix quality.
func (n *Navigator) Signal() SignalState { return n.signal }

// Route returns a copy of the route waypoints in insertion order.
func (n *Navigator) Route() []Waypoint {
	out := make([]Waypoint, len(n.route))
	copy(out, n.route)
	return out
}
