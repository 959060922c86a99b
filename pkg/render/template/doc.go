// Package template defines the template engine contract source renderers
// depend on. The gotemplate subpackage implements it on top of
// github.com/goliatone/go-template.
package template
