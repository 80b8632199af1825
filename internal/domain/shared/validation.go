package shared

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/attendance-tracker/tracker/pkg/timeutil"
)

// Enum is implemented by every closed enumeration of the domain.
type Enum interface {
	Valid() bool
}

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags & texts
	enumTag  = "enum"
	enumText = "{0} has an unsupported value"

	hourTag   = "hhmm"
	hourText  = "{0} must be a time in HH:MM format"
	hourRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

	isoDateTag  = "isodate"
	isoDateText = "{0} must be a date in YYYY-MM-DD format"
)

func init() {
	enLocale := en.New()
	translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")

	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(enumTag, enumValidation)
	RegisterCustomTranslation(enumTag, enumText)

	_ = validate.RegisterValidation(hourTag, hourValidation)
	RegisterCustomTranslation(hourTag, hourText)

	_ = validate.RegisterValidation(isoDateTag, isoDateValidation)
	RegisterCustomTranslation(isoDateTag, isoDateText)
}

// RegisterCustomTranslation registers the message shown for a validation tag.
// The text may reference the field name with {0}.
func RegisterCustomTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// RegisterStructRule registers a struct level rule for the given types.
// Failures reported by fn with the given tag are rendered with text.
func RegisterStructRule(tag, text string, fn validator.StructLevelFunc, types ...any) {
	validate.RegisterStructValidation(fn, types...)
	RegisterCustomTranslation(tag, text)
}

// Validate runs the struct validation rules of v and converts failures
// into a *ValidationError naming the entity.
func Validate(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return WrapError(entity, "Validate", ErrInvalidInput, "cannot validate value", err)
	}

	out := &ValidationError{Entity: entity, Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe),
			Message: fe.Translate(translator),
		})
	}
	return out
}

// fieldPath strips the root struct name from the namespace, e.g.
// "Record.records[0].status" becomes "records[0].status".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

// CleanString trims all leading and trailing whitespace in s.
func CleanString(s string) string {
	return strings.TrimSpace(s)
}

// IsHour reports whether s is a zero-padded "HH:MM" time.
func IsHour(s string) bool {
	return hourRegex.MatchString(s)
}

// Custom Global Validators

func enumValidation(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(Enum)
	return ok && e.Valid()
}

func hourValidation(fl validator.FieldLevel) bool {
	return IsHour(fl.Field().String())
}

func isoDateValidation(fl validator.FieldLevel) bool {
	_, err := timeutil.ParseDate(fl.Field().String())
	return err == nil
}
