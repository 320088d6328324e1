package navigation

import (
	"context"
	"errors"
	"testing"

	"infotainment-agent/pkg/notification"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestNavigator() (*Navigator, *notification.Hub) {
	hub := notification.NewHub(zerolog.Nop())
	return NewNavigator(hub, nil, zerolog.Nop()), hub
}

func lastNotification(t *testing.T, hub *notification.Hub) notification.Notification {
	t.Helper()
	all := hub.All()
	if len(all) == 0 {
		t.Fatal("expected at least one notification")
	}
	return all[len(all)-1]
}

func TestNavigator_InitialState(t *testing.T) {
	nav, _ := newTestNavigator()

	assert.Equal(t, Idle, nav.Status())
	assert.True(t, nav.Signal().Usable)
	assert.Equal(t, 8, nav.Signal().Satellites)

	_, ok := nav.Destination()
	assert.False(t, ok)
	_, ok = nav.DistanceToDestination()
	assert.False(t, ok)
	_, ok = nav.ETAMinutes()
	assert.False(t, ok)
	_, ok = nav.BearingToDestination()
	assert.False(t, ok)
}

func TestNavigator_UpdateLocation(t *testing.T) {
	nav, _ := newTestNavigator()

	nav.UpdateLocation(sanFrancisco)
	assert.Equal(t, sanFrancisco, nav.CurrentLocation())
}

func TestNavigator_UpdateLocation_InvalidRejected(t *testing.T) {
	nav, hub := newTestNavigator()
	nav.UpdateLocation(sanFrancisco)

	nav.UpdateLocation(Coordinate{Latitude: 99.0, Longitude: 0})

	assert.Equal(t, sanFrancisco, nav.CurrentLocation(), "state must be untouched")
	n := lastNotification(t, hub)
	assert.Equal(t, notification.Warning, n.Level)
	assert.Equal(t, "Invalid GPS coordinates received", n.Message)
}

func TestNavigator_SetDestination(t *testing.T) {
	nav, hub := newTestNavigator()

	nav.SetDestination(losAngeles, "Los Angeles")

	dest, ok := nav.Destination()
	assert.True(t, ok)
	assert.Equal(t, losAngeles, dest)
	assert.Equal(t, "Los Angeles", nav.DestinationName())
	assert.Equal(t, Idle, nav.Status())

	n := lastNotification(t, hub)
	assert.Equal(t, notification.Info, n.Level)
	assert.Contains(t, n.Message, "Los Angeles")
	assert.Contains(t, n.Message, "34.052200, -118.243700")
}

func TestNavigator_SetDestination_Invalid(t *testing.T) {
	nav, hub := newTestNavigator()

	nav.SetDestination(Coordinate{Latitude: 0, Longitude: 181}, "nowhere")

	_, ok := nav.Destination()
	assert.False(t, ok)
	assert.Equal(t, notification.Warning, lastNotification(t, hub).Level)
}

func TestNavigator_SetDestination_CancelsNavigation(t *testing.T) {
	nav, _ := newTestNavigator()
	nav.UpdateLocation(sanFrancisco)
	nav.SetDestination(losAngeles, "LA")
	nav.StartNavigation()
	assert.Equal(t, Navigating, nav.Status())

	nav.SetDestination(sanFrancisco, "back home")
	assert.Equal(t, Idle, nav.Status())
}

func TestNavigator_ExplicitOriginDestination(t *testing.T) {
	nav, _ := newTestNavigator()

	// (0,0) is a real place; setting it must register as a destination.
	nav.SetDestination(Coordinate{}, "Null Island")
	_, ok := nav.Destination()
	assert.True(t, ok)
}

func TestNavigator_StartNavigation_NoDestination(t *testing.T) {
	nav, hub := newTestNavigator()

	nav.StartNavigation()

	assert.Equal(t, Idle, nav.Status())
	n := lastNotification(t, hub)
	assert.Equal(t, notification.Warning, n.Level)
	assert.Equal(t, "No destination set for navigation", n.Message)
}

func TestNavigator_StartNavigation_NoFix(t *testing.T) {
	nav, hub := newTestNavigator()
	nav.SetDestination(losAngeles, "LA")
	nav.UpdateGPSSignal(2, 15.0)

	nav.StartNavigation()

	assert.Equal(t, Idle, nav.Status())
	assert.Equal(t, notification.Critical, lastNotification(t, hub).Level)
}

func TestNavigator_Lifecycle(t *testing.T) {
	nav, hub := newTestNavigator()
	nav.UpdateLocation(sanFrancisco)
	nav.UpdateSpeed(100)

	nav.SetDestination(losAngeles, "LA")
	assert.Equal(t, Idle, nav.Status())

	nav.StartNavigation()
	assert.Equal(t, Navigating, nav.Status())
	n := lastNotification(t, hub)
	assert.Contains(t, n.Message, "Navigation started")
	assert.Contains(t, n.Message, "km")
	assert.Contains(t, n.Message, "ETA")

	nav.AddWaypoint(Waypoint{Coordinate: sanFrancisco, Name: "start"})
	nav.StopNavigation()
	assert.Equal(t, Idle, nav.Status())
	assert.Empty(t, nav.Route())
}

func TestNavigator_StopNavigation_Idempotent(t *testing.T) {
	nav, hub := newTestNavigator()
	nav.SetDestination(losAngeles, "LA")
	nav.StartNavigation()

	nav.StopNavigation()
	count := hub.Count()

	nav.StopNavigation()
	assert.Equal(t, Idle, nav.Status())
	assert.Empty(t, nav.Route())
	assert.Equal(t, count, hub.Count(), "redundant stop must not emit")
}

func TestNavigator_Arrival(t *testing.T) {
	nav, hub := newTestNavigator()
	nav.UpdateLocation(sanFrancisco)
	nav.SetDestination(losAngeles, "LA")
	nav.StartNavigation()

	nav.UpdateLocation(losAngeles)

	assert.Equal(t, Arrived, nav.Status())
	n := lastNotification(t, hub)
	assert.Equal(t, notification.Info, n.Level)
	assert.Equal(t, "Destination reached", n.Message)
}

func TestNavigator_NoArrivalWhileIdle(t *testing.T) {
	nav, _ := newTestNavigator()
	nav.SetDestination(losAngeles, "LA")

	nav.UpdateLocation(losAngeles)

	assert.Equal(t, Idle, nav.Status())
}

func TestNavigator_SignalLossAndRecovery(t *testing.T) {
	nav, hub := newTestNavigator()
	nav.UpdateLocation(sanFrancisco)
	nav.SetDestination(losAngeles, "LA")
	nav.StartNavigation()

	nav.UpdateGPSSignal(2, 15.0)
	assert.Equal(t, GpsLost, nav.Status())
	assert.False(t, nav.Signal().Usable)
	n := lastNotification(t, hub)
	assert.Equal(t, notification.Critical, n.Level)
	assert.Equal(t, "GPS signal lost", n.Message)

	// Steady-state unusable readings make no noise.
	count := hub.Count()
	nav.UpdateGPSSignal(3, 20.0)
	assert.Equal(t, count, hub.Count())
	assert.Equal(t, GpsLost, nav.Status())

	nav.UpdateGPSSignal(9, 2.5)
	assert.Equal(t, Navigating, nav.Status())
	n = lastNotification(t, hub)
	assert.Equal(t, notification.Info, n.Level)
	assert.Equal(t, "GPS signal restored", n.Message)
}

func TestNavigator_SignalUsabilityThresholds(t *testing.T) {
	tests := []struct {
		satellites int
		accuracyM  float64
		usable     bool
	}{
		{8, 3.0, true},
		{4, 10.0, true},
		{2, 15.0, false},
		{3, 3.0, false},
		{8, 10.1, false},
	}

	for _, tt := range tests {
		nav, _ := newTestNavigator()
		nav.UpdateGPSSignal(tt.satellites, tt.accuracyM)
		assert.Equal(t, tt.usable, nav.Signal().Usable,
			"satellites=%d accuracy=%.1f", tt.satellites, tt.accuracyM)
	}
}

func TestNavigator_SignalClamping(t *testing.T) {
	nav, _ := newTestNavigator()

	nav.UpdateGPSSignal(-3, -5.0)

	assert.Equal(t, 0, nav.Signal().Satellites)
	assert.Equal(t, 0.0, nav.Signal().AccuracyM)
	assert.False(t, nav.Signal().Usable)
}

func TestNavigator_SpeedClamping(t *testing.T) {
	nav, _ := newTestNavigator()

	nav.UpdateSpeed(-10)
	assert.Equal(t, 0.0, nav.SpeedKmh())

	nav.UpdateSpeed(63.5)
	assert.Equal(t, 63.5, nav.SpeedKmh())
}

func TestNavigator_HeadingNormalization(t *testing.T) {
	nav, _ := newTestNavigator()

	nav.UpdateHeading(450.0)
	assert.InDelta(t, 90.0, nav.HeadingDeg(), 1e-9)

	nav.UpdateHeading(-90.0)
	assert.InDelta(t, 270.0, nav.HeadingDeg(), 1e-9)

	nav.UpdateHeading(360.0)
	assert.InDelta(t, 0.0, nav.HeadingDeg(), 1e-9)
}

func TestNavigator_Waypoints(t *testing.T) {
	nav, hub := newTestNavigator()

	nav.AddWaypoint(Waypoint{Coordinate: sanFrancisco, Name: "SF", Address: "California"})
	nav.AddWaypoint(Waypoint{Coordinate: losAngeles, Name: "LA"})
	nav.AddWaypoint(Waypoint{Coordinate: Coordinate{Latitude: 95}, Name: "bad"})

	route := nav.Route()
	assert.Len(t, route, 2)
	assert.Equal(t, "SF", route[0].Name)
	assert.Equal(t, "LA", route[1].Name)
	assert.Equal(t, notification.Warning, lastNotification(t, hub).Level)

	nav.ClearRoute()
	assert.Empty(t, nav.Route())
}

func TestNavigator_ETA(t *testing.T) {
	nav, _ := newTestNavigator()
	nav.UpdateLocation(sanFrancisco)
	nav.SetDestination(losAngeles, "LA")

	_, ok := nav.ETAMinutes()
	assert.False(t, ok, "no ETA while stationary")

	nav.UpdateSpeed(100)
	eta, ok := nav.ETAMinutes()
	assert.True(t, ok)

	d, _ := nav.DistanceToDestination()
	assert.InDelta(t, d/100*60, eta, 1e-9)
}

type fakeResolver struct {
	lat, lon float64
	err      error
}

func (f fakeResolver) Resolve(context.Context, string) (float64, float64, error) {
	return f.lat, f.lon, f.err
}

func TestNavigator_SetDestinationAddress(t *testing.T) {
	hub := notification.NewHub(zerolog.Nop())
	nav := NewNavigator(hub, fakeResolver{lat: 34.0522, lon: -118.2437}, zerolog.Nop())

	nav.SetDestinationAddress(context.Background(), "Los Angeles, CA")

	dest, ok := nav.Destination()
	assert.True(t, ok)
	assert.Equal(t, 34.0522, dest.Latitude)
	assert.Equal(t, "Los Angeles, CA", nav.DestinationName())
}

func TestNavigator_SetDestinationAddress_ResolverError(t *testing.T) {
	hub := notification.NewHub(zerolog.Nop())
	nav := NewNavigator(hub, fakeResolver{err: errors.New("quota exceeded")}, zerolog.Nop())

	nav.SetDestinationAddress(context.Background(), "nowhere")

	_, ok := nav.Destination()
	assert.False(t, ok)
	assert.Equal(t, notification.Warning, lastNotification(t, hub).Level)
}

func TestNavigator_SetDestinationAddress_NoResolver(t *testing.T) {
	nav, hub := newTestNavigator()

	nav.SetDestinationAddress(context.Background(), "anywhere")

	_, ok := nav.Destination()
	assert.False(t, ok)
	assert.Equal(t, notification.Warning, lastNotification(t, hub).Level)
}

func TestNavigator_Reports(t *testing.T) {
	nav, _ := newTestNavigator()
	nav.UpdateLocation(sanFrancisco)
	nav.UpdateSpeed(88.2)
	nav.UpdateHeading(135)
	nav.SetDestination(losAngeles, "Los Angeles")

	status := nav.StatusReport()
	assert.Contains(t, status, "37.774900, -122.419400")
	assert.Contains(t, status, "GOOD")
	assert.Contains(t, status, "8 satellites")
	assert.Contains(t, status, "88.2 km/h")
	assert.Contains(t, status, "IDLE")
	assert.Contains(t, status, "Los Angeles")
	assert.Contains(t, status, "Distance:")

	assert.Equal(t, "No route waypoints set\n", nav.RouteReport())

	nav.AddWaypoint(Waypoint{Coordinate: losAngeles, Name: "LA stop", Address: "Sunset Blvd"})
	route := nav.RouteReport()
	assert.Contains(t, route, "1. LA stop")
	assert.Contains(t, route, "Sunset Blvd")
	assert.Contains(t, route, "km away")
}
