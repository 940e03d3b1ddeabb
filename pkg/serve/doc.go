// Package serve renders elements over HTTP.
//
// Handler turns any element.Element into an http.Handler. The element is
// rendered straight into the response and flushed every FlushThreshold
// bytes, so large documents reach the browser before rendering finishes.
//
//	page := document.StartWithHead(head).WithBody(body)
//	http.Handle("/", serve.Handler(page))
//
// # Live Preview
//
// Preview holds the document currently being edited. It serves that
// document and keeps a WebSocket open to every browser viewing it; Update
// swaps the document and tells the browsers to reload:
//
//	preview := serve.NewPreview(page)
//	router := serve.NewRouter(serve.RouterConfig{Preview: preview})
//	go serve.NewWatcher(serve.WatcherConfig{Paths: files}).Start(ctx, func(changed []string) {
//	    preview.Update(rebuild())
//	})
//
// # Observability
//
// Handlers record Prometheus metrics when given a Metrics value and wrap
// each render in an OpenTelemetry span named "markup.render". The tracer
// defaults to the global provider.
package serve
