package service

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"mediscribe/internal/model"
)

// saveRules are the required-field rules checked at save time.
type saveRules struct {
	Name   string       `json:"name" validate:"required"`
	Age    int          `json:"age" validate:"gte=0"`
	Gender model.Gender `json:"gender" validate:"oneof=male female other"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json field names, not Go struct field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateInput checks the required record fields (name, age, gender) and
// returns a ValidationError naming every failing field.
func ValidateInput(in model.PatientInput) error {
	err := validate.Struct(saveRules{
		Name:   strings.TrimSpace(in.Name),
		Age:    in.Age,
		Gender: in.Gender,
	})
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field())
	}
	return &model.ValidationError{Fields: fields}
}
