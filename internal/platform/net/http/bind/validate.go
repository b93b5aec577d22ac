package bind

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validation holds the shared validator and its English translator
type Validation struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	valOnce sync.Once
	val     *Validation
)

// short messages replace the verbose defaults; {0} is the field, {1} the param
var shortMessages = map[string]string{
	"min":   "{0} must be at least {1}",
	"max":   "{0} must be at most {1}",
	"oneof": "{0} must be one of [{1}]",
	"utf8":  "{0} must be valid UTF-8",
}

// Validator returns the process wide validator, building it on first use
func Validator() *Validation {
	valOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("utf8", validUTF8)
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		for tag, text := range shortMessages {
			registerShort(v, trans, tag, text)
		}
		val = &Validation{v: v, trans: trans}
	})
	return val
}

// Struct validates s and returns validator.ValidationErrors on failure
func (x *Validation) Struct(s any) error { return x.v.Struct(s) }

// Register adds a custom tag
func (x *Validation) Register(tag string, fn validator.Func) error {
	return x.v.RegisterValidation(tag, fn)
}

// FieldMessage returns the first failing field and its translated message
func (x *Validation) FieldMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(x.trans)
	}
	return "", err.Error()
}

// jsonName reports fields by their JSON name so errors match the wire
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

func registerShort(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// validUTF8 rejects a string, or a string slice element, with invalid byte sequences
func validUTF8(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.String:
		return utf8.ValidString(f.String())
	case reflect.Slice, reflect.Array:
		for i := range f.Len() {
			if e := f.Index(i); e.Kind() == reflect.String && !utf8.ValidString(e.String()) {
				return false
			}
		}
	}
	return true
}
