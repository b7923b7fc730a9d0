package navtree

import (
	"fmt"
	"regexp"
)

// RuleType names what a matched document member represents.
type RuleType string

const (
	RulePaths      RuleType = "paths"
	RulePath       RuleType = "path"
	RuleOperation  RuleType = "operation"
	RuleWebhooks   RuleType = "webhooks"
	RuleWebhook    RuleType = "webhook"
	RuleComponents RuleType = "components"
	RuleModels     RuleType = "models"
	RuleModel      RuleType = "model"
)

// Rule is one entry of a schema map. A key matches when Match is set and
// matches it, or when NotMatch is set and does not. Keys are tested in
// their JSON Pointer encoded form.
type Rule struct {
	Match    string
	NotMatch string
	Type     RuleType
	Children []Rule

	match    *regexp.Regexp
	notMatch *regexp.Regexp
}

const httpMethods = `^(get|post|put|delete|options|head|patch|trace)$`

var (
	// OAS2Rules is the schema map for Swagger 2.0 documents.
	OAS2Rules = MustCompileRules([]Rule{
		{
			Match: `^paths$`,
			Type:  RulePaths,
			Children: []Rule{{
				NotMatch: `^x-`,
				Type:     RulePath,
				Children: []Rule{{Match: httpMethods, Type: RuleOperation}},
			}},
		},
		{
			Match:    `^definitions$`,
			Type:     RuleModels,
			Children: []Rule{{NotMatch: `^x-`, Type: RuleModel}},
		},
	})

	// OAS3Rules is the schema map for OpenAPI 3.x documents.
	OAS3Rules = MustCompileRules([]Rule{
		{
			Match: `^paths$`,
			Type:  RulePaths,
			Children: []Rule{{
				NotMatch: `^x-`,
				Type:     RulePath,
				Children: []Rule{{Match: httpMethods, Type: RuleOperation}},
			}},
		},
		{
			Match: `^webhooks$`,
			Type:  RuleWebhooks,
			Children: []Rule{{
				NotMatch: `^x-`,
				Type:     RuleWebhook,
				Children: []Rule{{Match: httpMethods, Type: RuleWebhook}},
			}},
		},
		{
			Match: `^components$`,
			Type:  RuleComponents,
			Children: []Rule{{
				Match:    `^schemas$`,
				Type:     RuleModels,
				Children: []Rule{{NotMatch: `^x-`, Type: RuleModel}},
			}},
		},
	})
)

// CompileRules returns a copy of rules with every pattern compiled.
func CompileRules(rules []Rule) ([]Rule, error) {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		var err error
		if r.Match != "" && r.match == nil {
			if r.match, err = regexp.Compile(r.Match); err != nil {
				return nil, fmt.Errorf("navtree: rule %q: %w", r.Match, err)
			}
		}
		if r.NotMatch != "" && r.notMatch == nil {
			if r.notMatch, err = regexp.Compile(r.NotMatch); err != nil {
				return nil, fmt.Errorf("navtree: rule %q: %w", r.NotMatch, err)
			}
		}
		if len(r.Children) > 0 {
			if r.Children, err = CompileRules(r.Children); err != nil {
				return nil, err
			}
		}
		out[i] = r
	}
	return out, nil
}

// MustCompileRules is like CompileRules but panics on an invalid pattern.
func MustCompileRules(rules []Rule) []Rule {
	out, err := CompileRules(rules)
	if err != nil {
		panic(err)
	}
	return out
}

func (r *Rule) compiled() bool {
	return (r.Match == "" || r.match != nil) && (r.NotMatch == "" || r.notMatch != nil)
}

func (r *Rule) matches(key string) bool {
	if r.match != nil && r.match.MatchString(key) {
		return true
	}
	return r.notMatch != nil && !r.notMatch.MatchString(key)
}

// findRule returns the first rule in declaration order that accepts key.
func findRule(key string, rules []Rule) *Rule {
	for i := range rules {
		if rules[i].matches(key) {
			return &rules[i]
		}
	}
	return nil
}

func allCompiled(rules []Rule) bool {
	for i := range rules {
		if !rules[i].compiled() || !allCompiled(rules[i].Children) {
			return false
		}
	}
	return true
}
