package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupGracefulShutdown создаёт контекст, который отменяется по SIGINT/SIGTERM.
//
// Использование:
//
//	ctx, shutdown := utils.SetupGracefulShutdown()
//	defer shutdown()
//
// shutdown снимает обработчик сигналов и закрывает лог-файл.
// Если контекст к этому моменту отменён сигналом, это попадает в лог.
func SetupGracefulShutdown() (context.Context, func()) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return ctx, func() {
		// До stop() контекст отменяется только сигналом
		if err := ctx.Err(); err != nil {
			Info("Interrupted by signal, shutting down", "cause", context.Cause(ctx))
		}
		stop()
		Close()
	}
}
