package handlers

import (
	"github.com/LuthandoGubevu/tutorhub/internal/catalog"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding validators on gin's
// validator engine. Call once at startup.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("subject", func(fl validator.FieldLevel) bool {
		return catalog.ValidSubject(fl.Field().String())
	})
}
