package algo

import "fmt"

// Option configures an algorithm or a gradient.
//
// Size is interpreted per algorithm: the number of matrix entries for
// det_by_minor and the number of parameters for an_ode.
// TimeSetup selects whether one-time setup cost is included in the timed region.
type Option struct {
	Size      int
	TimeSetup bool
}

// String returns a compact description of the option.
func (o Option) String() string {
	return fmt.Sprintf("size=%d time_setup=%t", o.Size, o.TimeSetup)
}
