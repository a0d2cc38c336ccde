package algo

import "fmt"

// AnODE integration constants.
const (
	anODESteps = 10  // Runge-Kutta steps
	anODEFinal = 2.0 // final time
)

// AnODE solves the chain of linear ODEs
//
//	y[0]'(t) = x[0]
//	y[i]'(t) = x[i] * y[i-1](t)   for i > 0
//	y(0)     = 0
//
// with a fixed number of classical fourth-order Runge-Kutta steps on [0, 2]
// and returns y(2). Domain and Range are both opt.Size.
//
// The exact solution is y[i](t) = x[0]*...*x[i] * t^(i+1) / (i+1)!, which the
// integrator reproduces exactly when Size <= 4.
type AnODE[S any] struct {
	n int

	// scratch
	y, yt, k1, k2, k3, k4 []S
}

// NewAnODE creates an ODE algorithm. Call Setup before Evaluate.
func NewAnODE[S any]() *AnODE[S] {
	return &AnODE[S]{}
}

// Setup sizes the algorithm; opt.Size must be positive.
func (a *AnODE[S]) Setup(opt Option) error {
	if err := CheckSize(AnODEName, opt.Size); err != nil {
		return err
	}
	n := opt.Size
	a.n = n
	a.y = make([]S, n)
	a.yt = make([]S, n)
	a.k1 = make([]S, n)
	a.k2 = make([]S, n)
	a.k3 = make([]S, n)
	a.k4 = make([]S, n)
	return nil
}

// Domain returns Size.
func (a *AnODE[S]) Domain() int { return a.n }

// Range returns Size.
func (a *AnODE[S]) Range() int { return a.n }

// Evaluate returns y(2).
func (a *AnODE[S]) Evaluate(ar Arithmetic[S], x []S) []S {
	if len(x) != a.n {
		panic(fmt.Sprintf("an_ode: len(x) = %d, want %d", len(x), a.n))
	}
	h := ar.Const(anODEFinal / anODESteps)
	half := ar.Const(anODEFinal / anODESteps / 2)
	sixth := ar.Const(anODEFinal / anODESteps / 6)
	two := ar.Const(2)

	for i := range a.y {
		a.y[i] = ar.Const(0)
	}
	for step := 0; step < anODESteps; step++ {
		a.rhs(ar, x, a.y, a.k1)

		a.axpy(ar, half, a.k1)
		a.rhs(ar, x, a.yt, a.k2)

		a.axpy(ar, half, a.k2)
		a.rhs(ar, x, a.yt, a.k3)

		a.axpy(ar, h, a.k3)
		a.rhs(ar, x, a.yt, a.k4)

		// y += h/6 * (k1 + 2*k2 + 2*k3 + k4)
		for i := range a.y {
			sum := ar.Add(a.k1[i], ar.Mul(two, a.k2[i]))
			sum = ar.Add(sum, ar.Mul(two, a.k3[i]))
			sum = ar.Add(sum, a.k4[i])
			a.y[i] = ar.Add(a.y[i], ar.Mul(sixth, sum))
		}
	}
	return a.y
}

// rhs evaluates f(y) into dy.
func (a *AnODE[S]) rhs(ar Arithmetic[S], x, y, dy []S) {
	dy[0] = x[0]
	for i := 1; i < a.n; i++ {
		dy[i] = ar.Mul(x[i], y[i-1])
	}
}

// axpy sets yt = y + s*k.
func (a *AnODE[S]) axpy(ar Arithmetic[S], s S, k []S) {
	for i := range a.yt {
		a.yt[i] = ar.Add(a.y[i], ar.Mul(s, k[i]))
	}
}
