package templates

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

type Parser[T any] func(context T) (T, error)

// TypedTemplate pairs an HTML and a plain-text rendering of one email, with
// an optional parser that validates and normalizes the context first.
type TypedTemplate[T any] struct {
	Name         string
	HTMLTemplate *template.Template
	TextTemplate *texttemplate.Template
	Parse        Parser[T]
}

func (t *TypedTemplate[T]) Render(context T) (html string, text string, err error) {
	if t.Parse != nil {
		parsed, err := t.Parse(context)
		if err != nil {
			return "", "", err
		}
		context = parsed
	}

	var htmlBuf bytes.Buffer
	if err := t.HTMLTemplate.Execute(&htmlBuf, context); err != nil {
		return "", "", err
	}

	var textBuf bytes.Buffer
	if t.TextTemplate != nil {
		if err := t.TextTemplate.Execute(&textBuf, context); err != nil {
			return "", "", err
		}
	}

	return htmlBuf.String(), textBuf.String(), nil
}

func NewTemplate[T any](name string, htmlTmpl string, textTmpl string, parser Parser[T]) (*TypedTemplate[T], error) {
	htmlTemplate, err := template.New(name + "_html").Parse(htmlTmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html template %s: %w", name, err)
	}

	var textTemplate *texttemplate.Template
	if textTmpl != "" {
		textTemplate, err = texttemplate.New(name + "_text").Parse(textTmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to parse text template %s: %w", name, err)
		}
	}

	return &TypedTemplate[T]{
		Name:         name,
		HTMLTemplate: htmlTemplate,
		TextTemplate: textTemplate,
		Parse:        parser,
	}, nil
}
