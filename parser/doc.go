// Package parser loads OpenAPI descriptions and classifies their dialect.
//
// Documents are decoded into a yaml.Node tree rather than Go maps, so the
// order of paths, operations and schemas in the source is preserved for
// everything built on top of the parse result. JSON input goes through
// the same decoder; [Document.Format] records which syntax was seen.
//
// # Loading
//
//	doc, err := parser.ParseWithOptions(parser.WithFilePath("petstore.yaml"))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(doc.Dialect) // oas3
//
// URLs are fetched with the configured HTTP client. A failed fetch returns
// a *oaserrors.FetchError; a document that cannot be decoded returns a
// *oaserrors.ParseError.
//
// # Classification
//
// [Classify] reports [DialectOAS2], [DialectOAS3], [DialectOAS31] or
// [DialectUnrecognized] from the swagger and openapi fields.
package parser
