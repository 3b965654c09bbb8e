// Package hopf provides the math behind the Hopf fibration visualization.
//
// The package maps points of the 2-sphere to their Hopf fibers, great circles
// of the 3-sphere, and projects them stereographically into R³:
//
//   - [Point3], [Point4]: coordinates in R³ and on S³
//   - [Stereographic]: projection from the pole (0,0,0,1)
//   - [Sample]: ordered samples of the fiber over a base point
//   - [ColorOf]: deterministic display color of a base point
//   - [LatitudeFamily], [RotatedCircleFamily]: base points for fiber families
//
// # Example
//
//	p := hopf.Point3{X: 0, Y: 0, Z: 1}
//	points, _ := hopf.Sample(p, hopf.DefaultSteps)
//	color := hopf.ColorOf(p)
//
// # Degenerate base point
//
// The base point (-1,0,0) is the singularity of the chosen parametrization.
// Its fiber is reported as [DefaultSteps] copies of the zero vector.
package hopf
