// Package validator wraps go-playground/validator so modules receive a
// shared, injectable instance instead of constructing their own.
package validator

import "github.com/go-playground/validator/v10"

// Validator validates transport DTOs against their struct tags.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator. Custom rules are added via RegisterValidation.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Struct checks every tagged field of s.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var checks a single value against a tag expression.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation installs a named custom rule.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
