// Package normalizer converts raw OpenAPI fragments into version-independent
// service and operation records.
//
// The tree walker only depends on the [Normalizer] interface. Two
// implementations are provided: [OAS2] for Swagger 2.0 documents and [OAS3]
// for OpenAPI 3.0 and 3.1 documents. Both read the decoded yaml.Node tree
// directly and resolve local "#/..." references they meet on the way.
//
// An operation is addressed by the document, its name (a path template for
// operations, a webhook key for webhooks), an HTTP method, and a [Config]
// that says which top-level member holds it:
//
//	op := normalizer.OAS3{}.Operation(doc, "/pets", "get", normalizer.OperationConfig)
//	hook := normalizer.OAS3{}.Operation(doc, "newPet", "post", normalizer.WebhookConfig)
//
// Operations carry the stable interface identifier found in the
// x-stoplight.id extension as IID.
package normalizer
