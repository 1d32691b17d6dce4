package wrapper

import (
	"context"
	"fmt"
	"time"

	"github.com/code19m/errx"

	"github.com/forja-labs/pkg/alert"
	"github.com/forja-labs/pkg/logger"
	"github.com/forja-labs/pkg/meta"
	"github.com/forja-labs/pkg/pipeline/command"
)

const (
	alertTimeout = 3 * time.Second
)

// NewAlertCommandWrapper returns middleware that reports failed command
// executions through the alert provider. The alert is sent on a detached
// goroutine so the caller is never delayed, and the original error is
// returned unchanged.
func NewAlertCommandWrapper[C command.Context, R command.Result](
	log logger.Logger,
	alertProvider alert.Provider,
) command.WrapFunc[C, R] {
	log = log.Named("pipeline.command.alerting")

	return func(next command.ExecFunc[C, R]) command.ExecFunc[C, R] {
		return func(ctx context.Context, cmd command.Command[C, R]) (R, error) {
			result, err := next(ctx, cmd)
			if err == nil {
				return result, nil
			}

			e := errx.AsErrorX(err)

			operation := fmt.Sprintf("command: %s", command.NameOf(cmd))
			details := make(map[string]string)
			metaCtx := meta.ExtractMetaFromContext(ctx)
			for k, v := range metaCtx {
				details[string(k)] = v
			}

			newCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)

			go func() {
				defer cancel() // ensure newCtx is cancelled after sending alert

				sendErr := alertProvider.SendError(newCtx, e.Code(), err.Error(), operation, details)
				if sendErr != nil {
					log.With("alert_send_error", sendErr).Warn("failed to send error alert")
				}
			}()

			return result, err
		}
	}
}
