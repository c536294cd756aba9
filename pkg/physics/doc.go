// Package physics advances node positions with a force-directed integrator.
//
// Every node repels every other node with an inverse-square force, and
// every edge acts as a spring whose rest length is SpringLength*weight.
// One [Simulation.Step] computes all forces from the positions as they were
// at the start of the step, then integrates each free node:
//
//	v = (v + F) * Damping
//	p = p + v
//
// Damping is applied per step, not per unit of time, so the layout behaves
// the same at any frame rate in steps but not in wall-clock time.
//
// Pinned nodes (see graph.Node.Pin) are never integrated. They sit at their
// pin with zero velocity and still push and pull on everything else, which
// is what lets a dragged node tow its neighbours.
//
// # Lifecycle
//
// A Simulation is owned by exactly one engine. [Simulation.Rebuild] swaps
// in a new graph and [Simulation.Dispose] ends the simulation; stepping a
// disposed simulation returns an errors.ErrCodeDisposed error.
package physics
