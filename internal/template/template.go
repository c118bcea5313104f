package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Context holds all variables available for narrative template resolution.
type Context struct {
	// Patient display name
	Name string

	// Dominant category labels
	Constitution string
	State        string

	// Category-specific phrases
	Adjective string
	Strengths string

	// Extra variables supplied by the caller
	Vars map[string]string
}

// Render resolves template expressions in the given string.
// Uses Go's text/template syntax: {{.Name}}, {{.Vars.myvar}}.
// Returns the input unchanged if it contains no template delimiters.
func Render(tmpl string, ctx *Context) (string, error) {
	// Fast path: no template delimiters means no work to do.
	if !strings.Contains(tmpl, "{{") {
		return tmpl, nil
	}

	t, err := template.New("").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("template: parse: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("template: render: %w", err)
	}

	return buf.String(), nil
}

// MustRender is like Render but panics on error. It is meant for templates
// compiled into the binary, where a failure is a programming error.
func MustRender(tmpl string, ctx *Context) string {
	s, err := Render(tmpl, ctx)
	if err != nil {
		panic(err)
	}
	return s
}
