package services

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const MaxContentLength = 4096

var validate = validator.New(validator.WithRequiredStructEnabled())

type contentInput struct {
	Content string `validate:"required"`
}

// ValidateContent rejects whitespace-only and oversized content, callers are not trusted to check.
func ValidateContent(content string) error {
	if err := validate.Struct(contentInput{Content: strings.TrimSpace(content)}); err != nil {
		return ErrBlankContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

func ValidateStruct(in any) error {
	return validate.Struct(in)
}
