package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "agent")
}

var (
	ErrNotConfigured = fmt.Errorf("API key not configured")
	ErrEmptyResponse = fmt.Errorf("empty response from model")
)

// Attachment is inline binary content sent along with a prompt
type Attachment struct {
	MIMEType string
	Data     []byte
}

type Request struct {
	System      string
	Prompt      string
	Attachments []Attachment

	// JSON asks the provider to answer with a JSON document
	JSON bool
}

// Generator - interface of a single generative language model
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Model() string
}

type Result struct {
	Text  string
	Model string
}

type MultipleGeneratorErrors struct {
	errors []error
}

func (e *MultipleGeneratorErrors) Error() string {
	errorStrings := make([]string, len(e.errors))
	for i, err := range e.errors {
		errorStrings[i] = fmt.Sprintf("#%d: %s", i, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

// Errors returns the failure of every attempted generator in order
func (e *MultipleGeneratorErrors) Errors() []error {
	return e.errors
}

func NewMultipleGeneratorErrors(errors []error) *MultipleGeneratorErrors {
	return &MultipleGeneratorErrors{
		errors: errors,
	}
}

// Chain tries its generators in order and returns the first non-empty answer.
// Every generator is attempted at most once per call.
type Chain struct {
	generators []Generator
}

func NewChain(generators ...Generator) *Chain {
	return &Chain{
		generators: generators,
	}
}

// Configured reports whether at least one generator is available
func (c *Chain) Configured() bool {
	return c != nil && len(c.generators) > 0
}

// Models returns the model identifiers in the order they are tried
func (c *Chain) Models() []string {
	if c == nil {
		return nil
	}

	models := make([]string, 0, len(c.generators))
	for _, g := range c.generators {
		models = append(models, g.Model())
	}
	return models
}

func (c *Chain) Generate(ctx context.Context, req Request) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var errors []error
	for _, g := range c.generators {
		text, err := g.Generate(ctx, req)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}

		if err != nil {
			log.WithError(err).WithField("model", g.Model()).Warn("model candidate failed")
			errors = append(errors, fmt.Errorf("%s: %w", g.Model(), err))
			continue
		}

		return &Result{Text: text, Model: g.Model()}, nil
	}

	return nil, NewMultipleGeneratorErrors(errors)
}
