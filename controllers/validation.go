package controllers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vnkhanh/survey-manager/utils"
)

var registerOnce sync.Once

// RegisterValidators đăng ký rule "dmy" (ngày/tháng/năm) và cho validator đọc
// utils.NullableString như một string.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if n, ok := field.Interface().(utils.NullableString); ok && n.Value != nil {
				return *n.Value
			}
			return nil
		}, utils.NullableString{})
		_ = v.RegisterValidation("dmy", func(fl validator.FieldLevel) bool {
			return utils.IsClosingDate(fl.Field().String())
		})
	})
}
