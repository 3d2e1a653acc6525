package util

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug 验证社区 slug 是否为合法的 URL 标识符
func ValidateSlug(fl validator.FieldLevel) bool {
	slug, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return IsValidSlug(slug)
}

// IsValidSlug 校验 slug 格式：小写字母、数字与中划线
func IsValidSlug(slug string) bool {
	return slug != "" && len(slug) <= 64 && slugPattern.MatchString(slug)
}
