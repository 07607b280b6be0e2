package recon

import (
	"sort"
	"strings"
)

// Rule assigns a category to names containing any of its keywords.
type Rule struct {
	Category Category
	Keywords []string
}

// DefaultRules are evaluated in order; the first matching rule wins.
var DefaultRules = []Rule{
	{UserRelated, []string{"user", "id", "uid", "account", "profile"}},
	{ResourceRelated, []string{"doc", "file", "order", "invoice", "product"}},
	{BusinessLogic, []string{"amount", "price", "quantity", "discount", "status"}},
	{AccessControl, []string{"role", "permission", "access", "privilege", "admin"}},
	{Sensitive, []string{"password", "token", "secret", "key", "credit"}},
}

// Classify returns the category of a parameter name. Matching is a
// case-insensitive substring test, so "paid" is user related via "id".
// ok is false when no rule matches.
func Classify(name string) (Category, bool) {
	return classifyWith(DefaultRules, name)
}

func classifyWith(rules []Rule, name string) (Category, bool) {
	lower := strings.ToLower(name)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category, true
			}
		}
	}
	return "", false
}

// Categorize buckets params with DefaultRules. Names matching no rule are
// left out of every bucket.
func Categorize(params []string) Categorized {
	out := make(Categorized, len(Categories))
	for _, cat := range Categories {
		out[cat] = make([]string, 0)
	}

	for _, p := range params {
		if cat, ok := Classify(p); ok {
			out[cat] = append(out[cat], p)
		}
	}

	for _, cat := range Categories {
		sort.Strings(out[cat])
	}
	return out
}
