// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown, and provides liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled, SIGINT or SIGTERM arrives, or
// ListenAndServe fails. Shutdown waits up to ShutdownTimeout for in-flight
// requests.
package httpserver
