package utils

import (
	"reflect"

	"github.com/aarondl/null/v8"
)

// ApplyUpdates переносит в dst все заданные (Valid) null.String поля из src
// с тем же именем и возвращает имена реально изменённых полей.
// Поля dst могут быть string или типом на его основе (например, BranchStatus).
func ApplyUpdates(dst interface{}, src interface{}) []string {
	dstVal := reflect.ValueOf(dst).Elem()
	srcVal := reflect.ValueOf(src)
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}

	var changed []string
	for i := 0; i < srcVal.NumField(); i++ {
		fieldName := srcVal.Type().Field(i).Name
		patchValue, ok := srcVal.Field(i).Interface().(null.String)
		if !ok || !patchValue.Valid {
			continue
		}

		dstField := dstVal.FieldByName(fieldName)
		if !dstField.IsValid() || !dstField.CanSet() || dstField.Kind() != reflect.String {
			continue
		}

		if dstField.String() != patchValue.String {
			dstField.Set(reflect.ValueOf(patchValue.String).Convert(dstField.Type()))
			changed = append(changed, fieldName)
		}
	}
	return changed
}
