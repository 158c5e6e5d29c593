package ingest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/at-ishikawa/playtrack/internal/scorm"
)

// scormSession is what a SCORM submission must carry before it is normalized.
type scormSession struct {
	GameID string     `json:"gameId" validate:"required"`
	Data   scorm.Data `json:"data"`
}

// payloadValidator reports missing identity fields using their JSON names.
type payloadValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newPayloadValidator() (*payloadValidator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &payloadValidator{validate: validate, translator: trans}, nil
}

// Struct returns nil or an error listing every failed field.
func (v *payloadValidator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, e.Translate(v.translator))
	}
	return errors.New(strings.Join(messages, ", "))
}
