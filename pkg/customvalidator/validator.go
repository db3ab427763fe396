// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует все наши кастомные правила
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("postalcode", isRussianPostalCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("mailtype", isKnownMailType); err != nil {
		return err
	}

	return nil
}

// Российский почтовый индекс: ровно 6 цифр.
func isRussianPostalCode(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^\d{6}$`)
	return re.MatchString(fl.Field().String())
}

func isKnownMailType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "parcel", "ems", "courier":
		return true
	}
	return false
}
