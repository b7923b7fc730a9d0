// Package navtree turns an OpenAPI document into a navigable tree of typed
// nodes.
//
// The tree has a single [ServiceNode] root whose children are operations,
// webhooks and schema models, in document order. Which members of the
// document become nodes is decided by a version-specific list of [Rule]
// values ([OAS2Rules], [OAS3Rules]) applied by one shared recursive walk,
// so dialect differences such as "definitions" versus "components/schemas"
// live entirely in data.
//
// # Quick Start
//
//	doc, err := parser.ParseWithOptions(parser.WithFilePath("petstore.yaml"))
//	if err != nil {
//	    return err
//	}
//	svc, err := navtree.Transform(doc)
//	if err != nil {
//	    return err // unrecognized dialect
//	}
//	for _, child := range svc.Children {
//	    fmt.Println(child.Type, child.URI, child.Name)
//	}
//
// # URIs
//
// Child URIs are built from the JSON Pointer of the member, then
// rewritten: operations and webhooks with a stable interface identifier
// become /operations/{iid} and /webhooks/{iid}; others have their encoded
// path replaced by a slug (/paths/pets-id/get). Schema URIs lose their
// "definitions/" or "components/schemas/" prefix in favour of "schemas/".
//
// # Memoization
//
// A [Cache] memoizes trees by a SHA-256 digest of the raw document, so a
// server can resolve many requests against the same source cheaply.
package navtree
