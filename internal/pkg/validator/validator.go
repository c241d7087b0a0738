package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"kayexpress/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	registerCustom(validate)
}

func registerCustom(v *validator.Validate) {
	_ = v.RegisterValidation("ghanaphone", func(fl validator.FieldLevel) bool {
		return domain.ValidGhanaPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("ghanaregion", func(fl validator.FieldLevel) bool {
		return domain.ValidRegion(fl.Field().String())
	})
	_ = v.RegisterValidation("momoprovider", func(fl validator.FieldLevel) bool {
		switch domain.MomoProvider(fl.Field().String()) {
		case domain.MomoMTN, domain.MomoVodafone, domain.MomoAirtelTigo:
			return true
		}
		return false
	})
}

// RegisterGinValidators installs the Ghana-specific rules on gin's
// binding engine so binding tags can use them directly.
func RegisterGinValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustom(v)
	}
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}
