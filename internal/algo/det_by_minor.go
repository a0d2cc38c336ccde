package algo

import "fmt"

// DetByMinor computes the determinant of a square matrix using expansion by minors.
//
// The input x has length ell*ell and holds the matrix in row major order:
//
//	A(x)[i][j] = x[i*ell + j]
//
// The single output is det(A(x)). Rows and columns of a minor are tracked with
// linked lists (r and c) so no sub-matrix is ever copied; index ell of each
// list holds the first remaining row/column.
type DetByMinor[S any] struct {
	ell int
	r   []int // r[i] is the row following row i in the current minor
	c   []int // c[j] is the column following column j in the current minor
	y   []S
}

// NewDetByMinor creates a determinant algorithm. Call Setup before Evaluate.
func NewDetByMinor[S any]() *DetByMinor[S] {
	return &DetByMinor[S]{}
}

// Setup sizes the algorithm; opt.Size must be a square ell*ell with ell >= 1.
func (d *DetByMinor[S]) Setup(opt Option) error {
	if err := CheckSize(DetByMinorName, opt.Size); err != nil {
		return err
	}
	ell, _ := squareRoot(opt.Size)
	d.ell = ell
	d.r = make([]int, ell+1)
	d.c = make([]int, ell+1)
	for i := 0; i < ell; i++ {
		d.r[i] = i + 1
		d.c[i] = i + 1
	}
	d.r[ell] = 0
	d.c[ell] = 0
	d.y = make([]S, 1)
	return nil
}

// Domain returns ell*ell.
func (d *DetByMinor[S]) Domain() int { return d.ell * d.ell }

// Range returns 1.
func (d *DetByMinor[S]) Range() int { return 1 }

// Evaluate returns [det(A(x))].
func (d *DetByMinor[S]) Evaluate(ar Arithmetic[S], x []S) []S {
	if len(x) != d.Domain() {
		panic(fmt.Sprintf("det_by_minor: len(x) = %d, want %d", len(x), d.Domain()))
	}
	d.y[0] = d.minor(ar, x, d.ell)
	return d.y
}

// minor returns the determinant of the n x n minor of A(x) whose rows and
// columns are the ones currently linked from r[ell] and c[ell].
func (d *DetByMinor[S]) minor(ar Arithmetic[S], x []S, n int) S {
	m := d.ell
	r, c := d.r, d.c

	r0 := r[m] // first row of the minor
	c0 := c[m] // first column of the minor
	if n == 1 {
		return x[r0*m+c0]
	}

	// remove row r0
	r[m] = r[r0]

	var det S
	cj := c0 // current column
	cj1 := m // column linked before cj (m: the list head)
	add := true
	for j := 0; j < n; j++ {
		// remove column cj
		if cj1 == m {
			c[m] = c[cj]
		} else {
			c[cj1] = c[cj]
		}

		term := ar.Mul(x[r0*m+cj], d.minor(ar, x, n-1))

		// restore column cj
		if cj1 == m {
			c[m] = cj
		} else {
			c[cj1] = cj
		}

		switch {
		case j == 0:
			det = term
		case add:
			det = ar.Add(det, term)
		default:
			det = ar.Sub(det, term)
		}
		add = !add

		cj1 = cj
		cj = c[cj]
	}

	// restore row r0
	r[m] = r0
	return det
}
