// Package httpserver provides an HTTP server wrapper with sane timeout
// defaults and context-driven graceful shutdown.
//
//	srv, err := httpserver.New(":8080", router, httpserver.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx)
package httpserver
