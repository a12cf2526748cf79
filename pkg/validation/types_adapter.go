package validation

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// registerNullTypes учит валидатор "смотреть внутрь" null.String.
// Непереданное поле становится nil-указателем и пропускается тегом omitnil,
// переданное (даже пустое) проверяется по остальным тегам.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			s := val.String
			return &s
		}
		return (*string)(nil)
	}, null.String{})
}
