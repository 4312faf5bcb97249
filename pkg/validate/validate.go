// Package validate holds the shared go-playground validator for checks made
// outside gin request binding.
package validate

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Email reports whether s is a bare mailbox address. Display-name forms such
// as "Eve <eve@example.com>" do not pass.
func Email(s string) bool {
	return validate.Var(s, "required,email") == nil
}
