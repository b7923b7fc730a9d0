package normalizer

// Kind distinguishes HTTP operations from webhooks.
type Kind string

const (
	// KindOperation is an operation under paths.
	KindOperation Kind = "operation"
	// KindWebhook is an operation under webhooks.
	KindWebhook Kind = "webhook"
)

// Config tells a Normalizer where an operation lives in the document.
type Config struct {
	Kind Kind
	// DocumentProp is the top-level member holding the operations.
	DocumentProp string
	// NameProp is the record field the name is stored in.
	NameProp string
}

var (
	// OperationConfig addresses operations under paths.
	OperationConfig = Config{Kind: KindOperation, DocumentProp: "paths", NameProp: "path"}
	// WebhookConfig addresses operations under webhooks.
	WebhookConfig = Config{Kind: KindWebhook, DocumentProp: "webhooks", NameProp: "name"}
)

// Service is the normalized top-level description of an API.
type Service struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Version        string         `json:"version,omitempty"`
	Summary        string         `json:"summary,omitempty"`
	Description    string         `json:"description,omitempty"`
	TermsOfService string         `json:"termsOfService,omitempty"`
	Contact        *Contact       `json:"contact,omitempty"`
	License        *License       `json:"license,omitempty"`
	Logo           *Logo          `json:"logo,omitempty"`
	Servers        []Server       `json:"servers,omitempty"`
	Tags           []Tag          `json:"tags,omitempty"`
	Security       []Requirement  `json:"security,omitempty"`
	Extensions     map[string]any `json:"extensions,omitempty"`
}

// TagNames returns the names of the declared tags in order.
func (s *Service) TagNames() []string {
	if s == nil {
		return []string{}
	}
	names := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		names = append(names, t.Name)
	}
	return names
}

// Contact is the API contact information.
type Contact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// License is the API license information.
type License struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Logo is read from the x-logo extension of the info object.
type Logo struct {
	URL             string `json:"url"`
	AltText         string `json:"altText,omitempty"`
	Href            string `json:"href,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Server is a base URL the API is served from.
type Server struct {
	URL         string                    `json:"url"`
	Name        string                    `json:"name,omitempty"`
	Description string                    `json:"description,omitempty"`
	Variables   map[string]ServerVariable `json:"variables,omitempty"`
}

// ServerVariable is a substitution for a server URL template.
type ServerVariable struct {
	Default     string   `json:"default"`
	Enum        []string `json:"enum,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Tag is a named grouping of operations.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Requirement maps security scheme names to required scopes.
type Requirement map[string][]string

// Operation is the normalized record of an operation or webhook.
type Operation struct {
	// IID is the stable interface identifier, from x-stoplight.id.
	IID         string `json:"iid,omitempty"`
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	OperationID string `json:"operationId,omitempty"`
	Method      string `json:"method"`
	// Path is the path template. Empty for webhooks.
	Path string `json:"path,omitempty"`
	// Name is the webhook key. Empty for operations.
	Name        string         `json:"name,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	Description string         `json:"description,omitempty"`
	Tags        []Tag          `json:"tags"`
	Internal    bool           `json:"internal,omitempty"`
	Deprecated  bool           `json:"deprecated,omitempty"`
	Servers     []Server       `json:"servers,omitempty"`
	Security    []Requirement  `json:"security,omitempty"`
	Parameters  []Parameter    `json:"parameters,omitempty"`
	RequestBody *RequestBody   `json:"requestBody,omitempty"`
	Responses   []Response     `json:"responses,omitempty"`
	Extensions  map[string]any `json:"extensions,omitempty"`
}

// TagNames returns the names of the operation's tags in order.
func (o *Operation) TagNames() []string {
	if o == nil {
		return []string{}
	}
	names := make([]string, 0, len(o.Tags))
	for _, t := range o.Tags {
		names = append(names, t.Name)
	}
	return names
}

// Parameter is a path, query, header or cookie parameter.
type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	Schema      any    `json:"schema,omitempty"`
}

// RequestBody describes the payload of a request.
type RequestBody struct {
	Description  string   `json:"description,omitempty"`
	Required     bool     `json:"required,omitempty"`
	ContentTypes []string `json:"contentTypes,omitempty"`
}

// Response is one documented response.
type Response struct {
	Code         string   `json:"code"`
	Description  string   `json:"description,omitempty"`
	ContentTypes []string `json:"contentTypes,omitempty"`
}
