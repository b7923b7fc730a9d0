// Package docserver serves the navigation tree of an OpenAPI document as
// browsable HTML documentation.
//
// A Server loads one document (file path or URL), inlines its local
// references, builds the tree and table of contents, and renders it with
// one of three layouts:
//
//   - sidebar: a table of contents next to the active node; every node
//     has its own URL under the base path.
//   - responsive: the sidebar layout with a collapsible table of contents.
//   - stacked: a single page listing operation and webhook tag groups.
//
// Unknown paths redirect to the first entry of the table of contents, and
// internal nodes redirect to the overview when internal nodes are hidden.
// The original and bundled documents can be downloaded from
// {base}/export/original and {base}/export/bundled, and the same data the
// pages are built from is available as JSON under {base}/api.
//
//	srv, err := docserver.New(docserver.Options{
//	    Source:   "openapi.yaml",
//	    BasePath: "/docs",
//	    Logger:   slog.Default(),
//	})
//	if err != nil {
//	    return err
//	}
//	if err := srv.Reload(ctx); err != nil {
//	    slog.Warn("document not loaded", "error", err)
//	}
//	return srv.ListenAndServe(ctx, ":8080", 10*time.Second)
package docserver
