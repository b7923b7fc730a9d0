// Package oasdocs turns OpenAPI descriptions into navigable documentation.
//
// An OpenAPI 2.0, 3.0 or 3.1 document is loaded, its local references are
// inlined, and the result is walked into a tree of typed nodes: one service
// node with operation, webhook and model children. From the tree the library
// derives tag groups, a table of contents, and the active node for a browser
// path.
//
// # Overview
//
// The library consists of these packages:
//
//   - parser: load documents from files, URLs, readers or bytes and classify their dialect
//   - bundler: inline local $ref references
//   - normalizer: turn raw operations and service metadata into flat records
//   - navtree: walk a document into a ServiceNode with typed children
//   - toc: tag groups, the table of contents and path resolution
//   - export: original or bundled downloads in the source format
//   - docserver: an HTTP documentation server with sidebar, stacked and responsive layouts
//   - oaserrors: structured error types shared by all packages
//
// Supported OpenAPI versions:
//   - OAS 2.0 (Swagger): https://spec.openapis.org/oas/v2.0.html
//   - OAS 3.0.x: https://spec.openapis.org/oas/v3.0.0.html
//   - OAS 3.1.x: https://spec.openapis.org/oas/v3.1.0.html
//
// # Installation
//
//	go get github.com/oasdocs/oasdocs
//
// # Quick Start
//
// Build the tree and table of contents of a document:
//
//	doc, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := bundler.BundleWithOptions(bundler.WithDocument(doc))
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc, err := navtree.Transform(res.Document)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, item := range toc.ComputeAPITree(svc, toc.Config{HideInternal: true}) {
//		fmt.Println(item.Kind, item.Title)
//	}
//
// Resolve the node shown for a request path when the documentation is
// mounted under /docs by an outer router:
//
//	rel := toc.ResolveRelativePath("/docs/paths/pets/get", "/docs", true)
//	tree := toc.ComputeAPITree(svc, toc.Config{})
//	res := toc.Locate(svc, tree, rel, false)
//	if res.Kind == toc.ResolutionChild {
//		fmt.Println(res.Node.Name)
//	}
//
// # Node URIs
//
// Every child has a URI made of JSON pointer segments:
//
//   - /paths/{path}/{method} for operations, e.g. /paths/pets-petId/get
//   - /operations/{iid} when the operation carries x-stoplight.id
//   - /webhooks/{name}/{method} for webhooks
//   - /schemas/{name} for models from components.schemas or definitions
//
// The service node always has the URI "/".
//
// # Command Line
//
// The oasdocs command exposes the library:
//
//	oasdocs tree openapi.yaml
//	oasdocs toc --hide-internal openapi.yaml
//	oasdocs resolve openapi.yaml /paths/pets/get
//	oasdocs export --variant bundled -o dist openapi.yaml
//	oasdocs serve --layout stacked openapi.yaml
//	oasdocs mcp
//
// # Error Handling
//
// Errors returned by the packages wrap the types in oaserrors. Use errors.Is
// with the sentinels (oaserrors.ErrParse, oaserrors.ErrFetch,
// oaserrors.ErrUnrecognizedDocument, ...) or errors.As with the typed errors
// to tell a failed fetch from a document that is not OpenAPI.
package oasdocs
