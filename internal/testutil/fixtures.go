// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oasdocs/oasdocs/parser"
)

// PetstoreOAS3 is an OpenAPI 3.0 document exercising tags, iids, slugs,
// internal members and schemas.
const PetstoreOAS3 = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
  description: |
    A **sample** API for pets.

    See the [guide](https://example.com/guide).
  x-logo:
    url: https://example.com/logo.png
    altText: Petstore
tags:
  - name: Pets
    description: Everything about pets
  - name: store
paths:
  x-ignored:
    get:
      summary: should not appear
  /pets:
    get:
      summary: List pets
      tags: [pets]
      x-stoplight:
        id: list-pets
    post:
      summary: Create pet
      tags: [Pets]
  /pets/{petId}:
    get:
      operationId: showPet
      tags: [pets]
    delete:
      summary: Delete pet
      tags: [admin]
      x-internal: true
  /health:
    get:
      summary: Health
    x-extension: true
components:
  schemas:
    Pet:
      title: A Pet
      type: object
      x-tags: [Pets]
    Error:
      type: object
    Secret:
      type: object
      x-internal: true
    x-meta:
      type: object
`

// WebhooksOAS31 is an OpenAPI 3.1 document with webhooks.
const WebhooksOAS31 = `openapi: 3.1.0
info:
  title: Hooks
  version: "1"
paths:
  /orders:
    get:
      summary: List orders
      tags: [orders]
webhooks:
  orderCreated:
    post:
      summary: Order created
      tags: [orders]
  order/updated:
    post:
      x-stoplight:
        id: hook-upd
  plain:
    put:
      description: no summary
`

// LegacyOAS2 is a Swagger 2.0 document.
const LegacyOAS2 = `swagger: "2.0"
info:
  title: Legacy
  version: "1"
host: api.example.com
paths:
  /users:
    get:
      summary: List users
      tags: [users]
definitions:
  User:
    type: object
  x-skip:
    type: object
`

// Unrecognized decodes fine but is not an OpenAPI document.
const Unrecognized = `asyncapi: 2.6.0
info:
  title: Events
`

// NewDocument parses src, failing the test on error.
func NewDocument(t testing.TB, src string) *parser.Document {
	t.Helper()
	doc, err := parser.ParseWithOptions(parser.WithBytes([]byte(src)))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

// WriteTempFile writes content to name inside a test temp dir and returns
// the path.
func WriteTempFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
