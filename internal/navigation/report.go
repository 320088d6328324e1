package navigation

import (
	"fmt"
	"strings"
)

// StatusReport renders a human-readable snapshot of the navigator state:
// position, fix quality, speed, heading, status and destination details when
// one is set. Presentation only; reading it changes nothing.
func (n *Navigator) StatusReport() string {
	var b strings.Builder

	b.WriteString("=== GPS STATUS ===\n")
	fmt.Fprintf(&b, "Current Location: %s\n", n.current)

	quality := "POOR/LOST"
	if n.signal.Usable {
		quality = "GOOD"
	}
	fmt.Fprintf(&b, "GPS Signal: %s (%d satellites, %.1fm accuracy)\n",
		quality, n.signal.Satellites, n.signal.AccuracyM)

	fmt.Fprintf(&b, "Speed: %.1f km/h\n", n.speedKmh)
	fmt.Fprintf(&b, "Heading: %.0f°\n", n.headingDeg)
	fmt.Fprintf(&b, "Navigation: %s\n", n.status)

	if n.destination != nil {
		fmt.Fprintf(&b, "Destination: %s (%s)\n", n.destinationName, *n.destination)
		if d, ok := n.DistanceToDestination(); ok {
			fmt.Fprintf(&b, "Distance: %.1f km\n", d)
		}
		if eta, ok := n.ETAMinutes(); ok {
			fmt.Fprintf(&b, "ETA: %.0f minutes\n", eta)
		}
		if bearing, ok := n.BearingToDestination(); ok {
			fmt.Fprintf(&b, "Bearing: %.0f°\n", bearing)
		}
	}

	return b.String()
}

// RouteReport lists the route waypoints with their distance from the current
// location.
func (n *Navigator) RouteReport() string {
	if len(n.route) == 0 {
		return "No route waypoints set\n"
	}

	var b strings.Builder
	b.WriteString("=== ROUTE WAYPOINTS ===\n")

	for i, w := range n.route {
		fmt.Fprintf(&b, "%d. %s\n", i+1, w.Name)
		fmt.Fprintf(&b, "   %s\n", w.Coordinate)
		if w.Address != "" {
			fmt.Fprintf(&b, "   %s\n", w.Address)
		}
		if d := Distance(n.current, w.Coordinate); d >= 0 {
			fmt.Fprintf(&b, "   %.1f km away\n", d)
		}
	}

	return b.String()
}
