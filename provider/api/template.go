package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Vars are the placeholder values of a path template.
type Vars map[string]string

// Expand replaces {name} placeholders in template. Values are path-escaped before the
// '?' and query-escaped after it. Unknown placeholders expand to the empty string.
func Expand(template string, vars Vars) string {
	path, query, hasQuery := strings.Cut(template, "?")

	out := substitute(path, vars, url.PathEscape)
	if hasQuery {
		out += "?" + substitute(query, vars, url.QueryEscape)
	}
	return out
}

func substitute(s string, vars Vars, escape func(string) string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '{')
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.IndexByte(s[start:], '}')
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		end += start

		b.WriteString(s[:start])
		b.WriteString(escape(vars[s[start+1:end]]))
		s = s[end+1:]
	}
}

// PageVars returns the pagination placeholders of a 1-based page.
// With a positive size, {offset} and {count} address the page as a window of items.
func PageVars(page, size int) Vars {
	if page < 1 {
		page = 1
	}
	vars := Vars{"page": strconv.Itoa(page)}
	if size > 0 {
		vars["offset"] = strconv.Itoa((page - 1) * size)
		vars["count"] = strconv.Itoa(size)
	}
	return vars
}
