package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/jeremyhahn/go-authenticator/pkg/otp"
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("validator: translator not found")

// Validator validates request structs.
type Validator interface {
	Validate(data any) error
}

// ValidationError maps field names to messages.
type ValidationError map[string]string

// Error implements the error interface.
func (vs ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return "validation error: " + string(b)
}

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New constructs a V10Validator with English translations and the OTP rules.
func New() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their flag names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("flag"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := registerRules(validate, enTrans); err != nil {
		return nil, err
	}

	return &V10Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Validate validates a struct and returns a ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	if err := v.validate.Struct(data); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		errV10 := make(ValidationError)
		for _, fe := range validateErrs {
			errV10[fe.Field()] = fe.Translate(v.translator)
		}

		return errV10
	}

	return nil
}

type rule struct {
	tag     string
	fn      validator.Func
	message string
}

var rules = []rule{
	{
		tag: "base32",
		fn: func(fl validator.FieldLevel) bool {
			_, err := otp.DecodeKey(fl.Field().String())
			return err == nil
		},
		message: "{0} must be valid unpadded base32",
	},
	{
		tag: "algorithm",
		fn: func(fl validator.FieldLevel) bool {
			_, err := otp.ParseAlgorithm(fl.Field().String())
			return err == nil
		},
		message: "{0} must be one of sha1, sha256, sha384, sha512",
	},
	{
		tag: "otptype",
		fn: func(fl validator.FieldLevel) bool {
			_, err := otp.ParseType(fl.Field().String())
			return err == nil
		},
		message: "{0} must be totp or hotp",
	},
}

func registerRules(validate *validator.Validate, enTrans ut.Translator) error {
	for _, r := range rules {
		if err := validate.RegisterValidation(r.tag, r.fn); err != nil {
			return err
		}

		message := r.message
		err := validate.RegisterTranslation(r.tag, enTrans,
			func(ut ut.Translator) error {
				return ut.Add(r.tag, message, false)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, err := ut.T(fe.Tag(), fe.Field())
				if err != nil {
					return fe.Error()
				}
				return t
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}
