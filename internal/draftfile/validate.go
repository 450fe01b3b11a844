package draftfile

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/conneroisu/forge/internal/color"
	"github.com/conneroisu/forge/internal/errors"
	"github.com/conneroisu/forge/internal/theme"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	presetIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("preset_id", func(fl validator.FieldLevel) bool {
			return presetIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("theme_color", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return color.IsHex6(s) || color.IsAlpha(s)
		})

		_ = v.RegisterValidation("color_key", func(fl validator.FieldLevel) bool {
			return theme.DefaultColors(theme.ModeLight).Has(theme.ColorKey(fl.Field().String()))
		})

		_ = v.RegisterValidation("radius_key", func(fl validator.FieldLevel) bool {
			return theme.DefaultRadius().Has(theme.RadiusKey(fl.Field().String()))
		})

		_ = v.RegisterValidation("spacing_key", func(fl validator.FieldLevel) bool {
			return theme.DefaultSpacing().Has(theme.SpacingKey(fl.Field().String()))
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks a parsed draft file. Every problem is reported, not just
// the first one.
func Validate(f *File) error {
	if f == nil {
		return errors.NewValidationError(errors.ErrCodeValidationFailed, "draft file is empty")
	}

	var vec errors.ValidationErrorCollection

	if err := validatorInstance().Struct(f); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ves {
				vec.AddField(fieldName(fe), fe.Value(), messageFor(fe))
			}
		} else {
			return errors.NewValidationError(errors.ErrCodeValidationFailed, err.Error())
		}
	}

	// Alpha forms are only valid for the translucent keys.
	for _, mode := range theme.Modes {
		for _, key := range theme.ColorKeys {
			value, ok := f.colors(mode)[string(key)]
			if !ok || !(color.IsHex6(value) || color.IsAlpha(value)) {
				continue
			}
			if !theme.AcceptsColor(key, value) {
				vec.AddField(string(mode)+"["+string(key)+"]", value,
					"translucent colors are only allowed for bgActive and shadowColor",
					"use a #RRGGBB value")
			}
		}
	}

	if vec.HasErrors() {
		return vec.ToForgeError()
	}
	return nil
}

// fieldName drops the root struct from the namespace: "File.light[bgPrimary]"
// becomes "light[bgPrimary]".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "theme_color":
		return "must be #RRGGBB (or an alpha form for bgActive and shadowColor)"
	case "color_key":
		return "unknown color token"
	case "radius_key":
		return "unknown radius step"
	case "spacing_key":
		return "unknown spacing step"
	case "preset_id":
		return "preset ids are lowercase letters, digits and dashes"
	case "required":
		return "must not be blank"
	default:
		return "failed validation for tag '" + fe.Tag() + "'"
	}
}
