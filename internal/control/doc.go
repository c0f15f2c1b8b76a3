// Package control provides feedback controllers that consume the joint
// layer the way any downstream client does: reading positions and rates
// through the public accessors and injecting generalized forces through
// the joints' force entry points. It never sees mobilizers or blueprints.
package control
