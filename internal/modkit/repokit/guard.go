package repokit

import (
	"context"
	"fmt"
)

type guarder interface {
	Guard(context.Context) error
}

// MustGuard runs the store guard and panics on any failure. Called at
// startup where limping along without the backend makes no sense
func MustGuard(ctx context.Context, st guarder) {
	if st == nil {
		panic("repokit: nil store for guard")
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
