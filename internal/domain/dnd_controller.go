package domain

import "context"

//go:generate mockgen -source=dnd_controller.go -destination=dnd_controller_mock.go -package=domain

// DNDController is the platform interruption-policy toggle. Apply is
// idempotent: re-applying the current value is a no-op side effect, not an
// error. Apply returns ErrPermissionDenied when policy access is missing.
type DNDController interface {
	HasPermission(ctx context.Context) (bool, error)
	Apply(ctx context.Context, active bool) error
	Current(ctx context.Context) (bool, error)
}
