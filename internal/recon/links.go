package recon

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MakeAbsolute resolves href against the page it was found on.
// Empty, fragment-only and javascript: targets are discarded. Targets
// starting with "http" are returned unchanged.
func MakeAbsolute(pageURL, href string) (string, bool) {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return "", false
	}
	if strings.HasPrefix(href, "http") {
		return href, true
	}
	return resolve(pageURL, href)
}

func resolve(pageURL, ref string) (string, bool) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(u).String(), true
}

// ExtractForm reads a form element found on pageURL.
//
// An absent or empty action resolves to pageURL itself, query included.
// An action that MakeAbsolute discards is reported as "".
func ExtractForm(sel *goquery.Selection, pageURL string) Form {
	form := Form{
		Method: "GET",
		Fields: make([]Field, 0),
	}

	action, _ := sel.Attr("action")
	if action == "" {
		form.Action, _ = resolve(pageURL, "")
	} else {
		form.Action, _ = MakeAbsolute(pageURL, action)
	}

	if method, ok := sel.Attr("method"); ok {
		form.Method = strings.ToUpper(method)
	}

	sel.Find("input, select, textarea").Each(func(i int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if name == "" {
			return
		}
		typ, ok := s.Attr("type")
		if !ok {
			typ = "text"
		}
		form.Fields = append(form.Fields, Field{Name: name, Type: typ})
	})

	return form
}

// endpointPath returns the decoded path of u. A path whose escaping is
// significant (such as an encoded slash) keeps its escaped form.
func endpointPath(u *url.URL) string {
	if u.RawPath != "" {
		return u.EscapedPath()
	}
	return u.Path
}

// queryParamNames returns the names in rawQuery that carry a non-empty
// value. Pairs are split on "&" only and cut at the first "=", so a value
// holding ";" or a bad escape still yields its name. A name that cannot be
// unescaped is kept as written.
func queryParamNames(rawQuery string) []string {
	var names []string
	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || value == "" {
			continue
		}
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if key == "" {
			continue
		}
		names = append(names, key)
	}
	return names
}
