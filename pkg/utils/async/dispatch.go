package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/utils/errutil"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
)

// Dispatch runs task in a new goroutine, detached from the cancellation of ctx.
// The logger of ctx is carried over. Errors and panics are logged under name.
func Dispatch(ctx context.Context, name string, task func(ctx context.Context) error) {
	logger := logging.From(ctx).With("task", name)
	bgCtx := logging.With(context.WithoutCancel(ctx), logger)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				_ = errutil.Handle(bgCtx, goerr.New("panic in background task", goerr.V("panic", r)), name)
			}
		}()

		logger.Debug("background task started")
		if err := task(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, name+" failed")
			return
		}
		logger.Debug("background task finished")
	}()
}
