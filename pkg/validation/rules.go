package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"branch-manager/internal/entities"
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("branch_status", isBranchStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("not_blank", isNotBlank); err != nil {
		return err
	}
	return nil
}

// isBranchStatus - только active / inactive
func isBranchStatus(fl validator.FieldLevel) bool {
	return entities.BranchStatus(fl.Field().String()).Valid()
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
