package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate — общий экземпляр; потокобезопасен, кэширует метаданные структур.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В сообщениях об ошибках — имена json-полей, а не Go-поля.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return v
}

// Validate проверяет декларативные правила DTO до любого обращения к
// апстриму. Ошибка валидации всегда транслируется в bad_request.
func Validate(v any) error {
	return validate.Struct(v)
}
