package job

import (
	"errors"
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/honeycarbs/jobboard/internal/domain"
)

var (
	fieldValidator = newFieldValidator()
	textPolicy     = bluemonday.StrictPolicy()
	spaceRun       = regexp.MustCompile(`[ \t]{2,}`)
)

const (
	msgRequired = "is required"
	msgMarkup   = "must not contain markup"
)

func newFieldValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("jobtype", func(fl validator.FieldLevel) bool {
		return domain.JobType(fl.Field().String()).Valid()
	})

	return v
}

// NormalizeFields trims and strips markup from submitted text. An omitted job type
// defaults to Full-Time.
func NormalizeFields(f domain.JobFields) domain.JobFields {
	f.Title = cleanText(f.Title)
	f.Company = cleanText(f.Company)
	f.Location = cleanText(f.Location)
	f.Description = cleanText(f.Description)
	if f.JobType == "" {
		f.JobType = domain.JobTypeFullTime
	}
	return f
}

// NormalizePatch applies NormalizeFields rules to the fields present in p
func NormalizePatch(p domain.JobPatch) domain.JobPatch {
	for _, s := range []**string{&p.Title, &p.Company, &p.Location, &p.Description} {
		if *s != nil {
			v := cleanText(**s)
			*s = &v
		}
	}
	return p
}

// PrepareFields normalizes a create request and validates the result. A field that
// only held markup is reported as such rather than as missing.
func PrepareFields(raw domain.JobFields) (domain.JobFields, error) {
	f := NormalizeFields(raw)
	err := ValidateFields(f)
	return f, markupOnly(err, map[string]string{
		"title":       raw.Title,
		"company":     raw.Company,
		"location":    raw.Location,
		"description": raw.Description,
	})
}

// PreparePatch is PrepareFields for partial updates
func PreparePatch(raw domain.JobPatch) (domain.JobPatch, error) {
	p := NormalizePatch(raw)
	err := ValidatePatch(p)

	submitted := make(map[string]string)
	for name, v := range map[string]*string{
		"title":       raw.Title,
		"company":     raw.Company,
		"location":    raw.Location,
		"description": raw.Description,
	} {
		if v != nil {
			submitted[name] = *v
		}
	}
	return p, markupOnly(err, submitted)
}

func markupOnly(err error, raw map[string]string) error {
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for i, fe := range verrs {
		if fe.Message == msgRequired && strings.TrimSpace(raw[fe.Field]) != "" {
			verrs[i].Message = msgMarkup
		}
	}
	return verrs
}

// ValidateFields checks a create request
func ValidateFields(f domain.JobFields) error {
	return translate(fieldValidator.Struct(f))
}

// ValidatePatch checks an update request. An empty patch is rejected.
func ValidatePatch(p domain.JobPatch) error {
	if p.Empty() {
		return ValidationErrors{{Field: "patch", Message: "no fields to update"}}
	}
	return translate(fieldValidator.Struct(p))
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return msgRequired
	case "jobtype":
		return "must be one of Full-Time, Part-Time, Contract"
	default:
		return "is invalid"
	}
}

// cleanText removes markup and surrounding whitespace, keeping plain-text entities readable.
// Runs of spaces left behind by removed tags collapse to one; line breaks are kept.
func cleanText(s string) string {
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
