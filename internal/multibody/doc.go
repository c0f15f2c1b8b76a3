// Package multibody implements the joint and mobilizer layer of an
// articulated rigid-body mechanism.
//
// A [Tree] owns named [Frame]s and the [Joint]s connecting them. Joints are
// declared first, while the topology is still open; a single [Tree.Finalize]
// pass then consumes each joint's [Blueprint], assigns every mobilizer a
// contiguous range of generalized coordinates, and binds it back to its
// joint. Only after finalize do the joints' state accessors work.
//
// All positions, velocities and generalized forces live in externally owned
// [State] and [Forces] containers, never in the joints themselves, so one
// finalized tree can serve many independent evaluations concurrently as long
// as each evaluation uses its own containers.
//
// The whole layer is generic over [scalar.Scalar], so a tree built over
// plain floats can be cloned to a derivative-carrying scalar with
// [CloneTreeToScalar] and evaluated with the exact same code to obtain
// gradients. Axis and offset geometry stays plain float64 across clones.
package multibody
