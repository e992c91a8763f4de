package web

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"

	"restoran-backoffice/internal/i18n"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Validate checks the validate tags of form and returns localized messages per
// field name; nil means the form is valid.
func Validate(c *fiber.Ctx, form any) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": i18n.Tc(c, "common.field.invalid")}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := "common.field.invalid"
		if fe.Tag() == "required" {
			key = "common.field.required"
		}
		fields[fe.Field()] = i18n.Tc(c, key)
	}
	return fields
}

// Bind parses the body into form and validates it. On failure it has already
// written the 400 response and returns ok=false.
func Bind(c *fiber.Ctx, form any) (ok bool, err error) {
	if err := c.BodyParser(form); err != nil {
		return false, Invalid(c, map[string]string{"_": i18n.Tc(c, "common.field.invalid")}, form)
	}
	if fields := Validate(c, form); fields != nil {
		return false, Invalid(c, fields, form)
	}
	return true, nil
}

// FormValues returns every value of a repeated form field.
func FormValues(c *fiber.Ctx, name string) []string {
	if mf, err := c.MultipartForm(); err == nil {
		return mf.Value[name]
	}
	var out []string
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		if string(k) == name {
			out = append(out, string(v))
		}
	})
	return out
}

// Copy fills dst from src by field name. A failed copy is logged and becomes
// a generic 500.
func Copy(c *fiber.Ctx, dst, src any) error {
	if err := copier.Copy(dst, src); err != nil {
		log.Printf("[ERROR] %T -> %T kopyalanamadı: %v", src, dst, err)
		return fiber.NewError(fiber.StatusInternalServerError, i18n.Tc(c, "common.error.generic"))
	}
	return nil
}
