package api

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators installs the custom binding rules on Gin's validator
// engine. Idempotent; re-registering the same tag just replaces it.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(birthDateLayout, fl.Field().String())
		return err == nil
	})
}
