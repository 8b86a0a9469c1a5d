package quickbiteserver

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	userdomain "github.com/Apurer/quickbite-api/internal/domains/users/domain"
)

var registerOnce sync.Once

// RegisterValidations installs the QuickBite binding rules on gin's
// validator and makes field errors report JSON names.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return userdomain.ValidateUsername(fl.Field().String()) == nil
		})
		_ = v.RegisterValidation("password_symbol", func(fl validator.FieldLevel) bool {
			return userdomain.ValidatePassword(fl.Field().String()) == nil
		})
	})
}

var fieldMessages = map[string]string{
	"username.required":        "Username is required",
	"username.min":             userdomain.ErrUsernameLength.Error(),
	"username.max":             userdomain.ErrUsernameLength.Error(),
	"username.username":        userdomain.ErrUsernameCharset.Error(),
	"password.required":        "Password is required",
	"password.min":             userdomain.ErrPasswordLength.Error(),
	"password.password_symbol": userdomain.ErrPasswordSymbol.Error(),
	"name.required":            "Menu item name is required",
	"name.min":                 "Menu item name must be between 2 and 100 characters",
	"name.max":                 "Menu item name must be between 2 and 100 characters",
	"description.max":          "Description must not exceed 500 characters",
	"price.required":           "Price is required",
	"userId.required":          "User ID is required",
	"menuItemId.required":      "Menu item ID is required",
	"quantity.min":             "Quantity must be at least 1",
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Field() + " failed on the '" + fe.Tag() + "' rule"
}
