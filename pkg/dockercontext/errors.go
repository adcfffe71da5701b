package dockercontext

import "fmt"

// CollisionError reports two distinct host paths claiming the same
// destination inside the build context. Collisions are never resolved
// silently: the wrong file would end up in the image.
type CollisionError struct {
	ContextPath string
	Existing    string
	Incoming    string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("context path %q already maps to %s, cannot also map %s",
		e.ContextPath, e.Existing, e.Incoming)
}
