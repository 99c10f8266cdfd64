// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("base64_image", validateBase64Image)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

// validateBase64Image accepts a bare base64 payload or a data URI as emitted
// by the mobile camera pipeline ("data:image/...;base64,....").
func validateBase64Image(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ";base64,")
		if idx < 0 {
			return false
		}
		s = s[idx+len(";base64,"):]
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}
