// Package validator оборачивает go-playground/validator и переводит его ошибки в доменные.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"rentwise-portal-service/internal/core/domain"

	"github.com/go-playground/validator/v10"
)

// Validator - проверка структур по тегам validate.
type Validator struct {
	v *validator.Validate
}

// New создает валидатор, который называет поля по их json-тегам.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	return &Validator{v: v}
}

func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// fieldMessages - тексты для пользователя по "поле.тег".
var fieldMessages = map[string]string{
	"lastName.required": domain.MsgLastNameRequired,
	"email.email":       "Email is not valid",
}

// Struct проверяет структуру. Первая найденная ошибка возвращается как *domain.ValidationError.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validation failed: %w", err)
	}

	fe := fieldErrs[0]
	msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg = fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
	return &domain.ValidationError{Field: fe.Field(), Message: msg}
}
