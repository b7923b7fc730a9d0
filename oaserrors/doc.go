// Package oaserrors provides structured error types for the oasdocs library.
//
// Import path: github.com/oasdocs/oasdocs/oaserrors
//
// Callers use [errors.Is] and [errors.As] to tell apart the failure states a
// documentation front end has to present differently:
//
//   - [ParseError]: the description could not be decoded, or its dialect is
//     not a recognized OpenAPI version
//   - [FetchError]: the description could not be fetched from its URL
//   - [ReferenceError]: a $ref could not be bundled into the document
//   - [ConfigError]: invalid options or configuration
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrUnrecognizedDocument]: matches a [ParseError] with Unrecognized=true
//   - [ErrFetch]: matches any [FetchError]
//   - [ErrReference]: matches any [ReferenceError]
//   - [ErrCircularReference]: matches a [ReferenceError] with IsCircular=true
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage
//
//	svc, err := navtree.Transform(doc)
//	switch {
//	case errors.Is(err, oaserrors.ErrUnrecognizedDocument):
//	    // show "Failed to parse OpenAPI file"
//	case errors.Is(err, oaserrors.ErrFetch):
//	    // show "Document could not be loaded"
//	}
package oaserrors
