// Package spatial provides the small amount of 3-D geometry the joint
// layer needs: scalar-generic vectors, rotation matrices, rigid transforms
// and twists, plus axis-angle construction and recovery.
//
// Fixed geometry such as joint axes is represented with gonum's r3.Vec and
// stays plain float64. State-dependent quantities (poses, twists) are
// generic over the scalar type so they can carry derivatives.
package spatial
