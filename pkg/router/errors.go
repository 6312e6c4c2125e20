package router

import "github.com/loom-ui/loom/internal/errors"

// Routing errors.
var (
	ErrRouteNotFound  = errors.New("E100")
	ErrMissingParam   = errors.New("E101")
	ErrDuplicateRoute = errors.New("E102")
	ErrInvalidPattern = errors.Newf(errors.CategoryRouting, "invalid route pattern")
)
