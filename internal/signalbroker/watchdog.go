// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/sweep/internal/ctxlog"
)

// Watch monitors the signal channel and handles signals.
// On the first signal it calls stop, which should request a cooperative
// cancellation of the active batch run. In-flight items are allowed to finish.
// On the second signal it closes the channel and cancels the context,
// forcefully terminating any remaining work.
func Watch(ctx context.Context, sigCh chan os.Signal, stop func(), cancel context.CancelFunc) {
	stopped := false

	for sig := range sigCh {
		if stopped {
			ctxlog.Logger(ctx).Info("watchdog", "detail", "received second signal, forcefully terminating", "signal", sig.String())
			close(sigCh)
			cancel()

			return
		}

		ctxlog.Logger(ctx).Info("watchdog", "detail", "received first signal, requesting cooperative stop", "signal", sig.String())

		if stop != nil {
			stop()
		}

		stopped = true
	}
}
