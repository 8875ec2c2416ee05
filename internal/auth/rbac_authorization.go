package auth

import "context"

// RequirePermissions returns a middleware that only invokes the wrapped operation when
// the principal holds every required permission.
func (c *PermissionChecker) RequirePermissions(required ...string) func(Operation) Operation {
	return func(next Operation) Operation {
		return func(ctx context.Context, p *Principal) error {
			if err := c.Authorize(ctx, p, required...); err != nil {
				return err
			}
			return next(ctx, p)
		}
	}
}

// Guard composes authentication and permission checks around op.
func (g *Gate) Guard(op Operation, required ...string) func(ctx context.Context) error {
	if len(required) == 0 {
		return g.RequireAuthentication(op)
	}
	return g.RequireAuthentication(g.permissions.RequirePermissions(required...)(op))
}
