// Package bundler inlines local JSON references in an OpenAPI document.
//
// Every "$ref" whose value is a local JSON Pointer ("#/components/...") is
// replaced by a copy of its target, with the targets' own references
// inlined in turn. References that point back into a chain already being
// expanded are circular; they, and references nested more than
// MaxRefDepth expansions deep, are left in place. References to other
// documents and references whose target does not exist are also left
// untouched.
//
// The source document is never modified:
//
//	res, err := bundler.BundleWithOptions(
//	    bundler.WithDocument(doc),
//	    bundler.WithMaxRefDepth(10),
//	)
//	if err != nil {
//	    return err
//	}
//	svc, err := navtree.Transform(res.Document)
//
// With WithStrict, unresolvable or circular references fail the bundle
// with an *oaserrors.ReferenceError instead.
package bundler
