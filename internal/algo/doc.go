// Package algo defines the algorithm capability measured by gradspeed.
//
// An Algorithm is a mathematical test function with a fixed input dimension
// (Domain) and output dimension (Range). It is generic over the scalar type S
// and performs all arithmetic through an Arithmetic[S], so the same code runs
// on plain float64 values and on the active types of every differentiation
// backend.
//
// Architecture:
//   - Arithmetic[S]: the scalar field (Const, Add, Sub, Mul, Div)
//   - Algorithm[S]: Setup(Option), Domain(), Range(), Evaluate(ar, x)
//   - DetByMinor[S]: determinant by expansion by minors
//   - AnODE[S]: Runge-Kutta integration of a chain of linear ODEs
//
// Usage:
//
//	det, _ := algo.New[float64]("det_by_minor")
//	_ = det.Setup(algo.Option{Size: 9})
//	y := det.Evaluate(algo.Float{}, x) // y[0] = det(A(x))
package algo
