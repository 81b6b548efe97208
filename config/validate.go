// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError is one rejected configuration value.
type ValidationError struct {
	Field string // dotted key, e.g. "bootstrap.level"
	Value any
	Rule  string // failed validator tag with its parameter
}

// Error implements error.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: violates %s (got: %v)", e.Field, e.Rule, e.Value)
}

// ValidationErrors collects every rejected value of one Config.
type ValidationErrors []ValidationError

// Error implements error.
func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, err.Error())
	}

	return sb.String()
}

// Validate checks c against its struct tags. The result is nil or ValidationErrors.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out = append(out, ValidationError{Field: dottedKey(fe.StructNamespace()), Value: fe.Value(), Rule: rule})
	}

	return out
}

// keyNames maps struct field names to their mapstructure keys.
var keyNames = map[string]string{
	"Bootstrap":    "bootstrap",
	"Filter":       "filter",
	"Network":      "network",
	"Log":          "log",
	"Metrics":      "metrics",
	"Runs":         "runs",
	"Length":       "length",
	"Seed":         "seed",
	"Workers":      "workers",
	"Level":        "level",
	"Percentages":  "percentages",
	"Kind":         "kind",
	"MaxDimension": "max_dimension",
	"MaxCrossing":  "max_crossing",
	"WeightMethod": "weight_method",
	"Cutoff":       "cutoff",
	"Format":       "format",
	"File":         "file",
}

// dottedKey turns "Config.Bootstrap.Level" into "bootstrap.level".
func dottedKey(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if k, ok := keyNames[p]; ok {
			parts[i] = k
		}
	}

	return strings.Join(parts, ".")
}
