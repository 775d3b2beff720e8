package handlers

import (
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the ean and nip binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("ean", func(fl validator.FieldLevel) bool {
		return domain.ValidEAN(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("nip", func(fl validator.FieldLevel) bool {
		return domain.ValidNIP(fl.Field().String())
	})
}
