package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// TemplateError reports which part of a template failed
type TemplateError struct {
	Part string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Part, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

func parse(subject, body string) (*texttemplate.Template, *htmltemplate.Template, error) {
	subjectTpl, err := texttemplate.New("subject").Option("missingkey=zero").Parse(subject)
	if err != nil {
		return nil, nil, &TemplateError{Part: "subject", Err: err}
	}
	bodyTpl, err := htmltemplate.New("body").Option("missingkey=zero").Parse(body)
	if err != nil {
		return nil, nil, &TemplateError{Part: "body", Err: err}
	}
	return subjectTpl, bodyTpl, nil
}

// Parse checks that subject and body are valid templates without executing
// them.
func Parse(subject, body string) error {
	_, _, err := parse(subject, body)
	return err
}

// Render executes a subject and an HTML body template against data. The
// subject is plain text, the body is escaped as HTML.
func Render(subject, body string, data interface{}) (string, string, error) {
	subjectTpl, bodyTpl, err := parse(subject, body)
	if err != nil {
		return "", "", err
	}

	var s, b bytes.Buffer
	if err := subjectTpl.Execute(&s, data); err != nil {
		return "", "", &TemplateError{Part: "subject", Err: err}
	}
	if err := bodyTpl.Execute(&b, data); err != nil {
		return "", "", &TemplateError{Part: "body", Err: err}
	}

	// Header injection guard
	renderedSubject := strings.Join(strings.Fields(s.String()), " ")
	return renderedSubject, b.String(), nil
}
