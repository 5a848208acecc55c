// internal/app/features/members/decode.go
package members

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// inputError is a client mistake that maps to 400.
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func badInput(format string, args ...any) error {
	return &inputError{msg: fmt.Sprintf(format, args...)}
}

// decodeJSONBody decodes the request body into dest and runs struct validation.
func decodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return badInput("invalid request body")
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return badInput("validation failed")
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fe.Field()+" "+validationMessage(fe))
	}
	return badInput("%s", strings.Join(parts, "; "))
}

func validationMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "is required"
	}
	return "is invalid"
}

// parseDate accepts a calendar date (YYYY-MM-DD) or a full RFC 3339
// timestamp and returns it in UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, badInput("dateOfBirth must be a date (YYYY-MM-DD) or an ISO-8601 timestamp")
}

// toMember validates a create body and builds the member to insert.
func (in createInput) toMember() (models.Member, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Member{}, badInput("name is required")
	}
	dob, err := parseDate(in.DateOfBirth)
	if err != nil {
		return models.Member{}, err
	}
	interests := in.Interests
	if interests == nil {
		interests = []string{}
	}
	return models.Member{
		Name:         name,
		DateOfBirth:  dob,
		MemberNumber: *in.MemberNumber,
		Interests:    interests,
	}, nil
}

// toPatch converts the supplied update fields into a store patch.
func (in updateInput) toPatch() (models.MemberPatch, error) {
	var p models.MemberPatch
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return p, badInput("name must not be empty")
		}
		p.Name = &name
	}
	if in.DateOfBirth != nil {
		dob, err := parseDate(*in.DateOfBirth)
		if err != nil {
			return p, err
		}
		p.DateOfBirth = &dob
	}
	if in.MemberNumber != nil {
		n := *in.MemberNumber
		p.MemberNumber = &n
	}
	if in.Interests != nil {
		interests := *in.Interests
		if interests == nil {
			interests = []string{}
		}
		p.Interests = &interests
	}
	return p, nil
}
