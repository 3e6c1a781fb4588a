package job_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
)

func TestValidateFieldsReportsEveryField(t *testing.T) {
	err := job.ValidateFields(domain.JobFields{JobType: "Temp"})

	var verrs job.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	got := map[string]string{}
	for _, fe := range verrs {
		got[fe.Field] = fe.Message
	}
	assert.Equal(t, map[string]string{
		"title":       "is required",
		"company":     "is required",
		"location":    "is required",
		"description": "is required",
		"job_type":    "must be one of Full-Time, Part-Time, Contract",
	}, got)
	assert.Contains(t, err.Error(), "title: is required")
}

func TestValidateFieldsAcceptsEveryJobType(t *testing.T) {
	for _, typ := range domain.JobTypes {
		err := job.ValidateFields(domain.JobFields{
			Title:       "Engineer",
			Company:     "Acme",
			Location:    "NYC",
			Description: "Build",
			JobType:     typ,
		})
		assert.NoError(t, err, typ)
	}
}

func TestValidatePatchIgnoresAbsentFields(t *testing.T) {
	assert.NoError(t, job.ValidatePatch(domain.JobPatch{Company: strPtr("Initech")}))

	bad := domain.JobType("Freelance")
	err := job.ValidatePatch(domain.JobPatch{JobType: &bad})
	var verrs job.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "job_type", verrs[0].Field)
}

func TestNormalizeStripsMarkupAndKeepsEntities(t *testing.T) {
	got := job.NormalizeFields(domain.JobFields{
		Title:       " <em>R&amp;D</em> Lead ",
		Company:     "Tom & Jerry",
		Location:    "\tNYC\n",
		Description: `<a href="javascript:alert(1)">click</a> here`,
	})

	assert.Equal(t, "R&D Lead", got.Title)
	assert.Equal(t, "Tom & Jerry", got.Company)
	assert.Equal(t, "NYC", got.Location)
	assert.Equal(t, "click here", got.Description)
	assert.Equal(t, domain.JobTypeFullTime, got.JobType)

	p := job.NormalizePatch(domain.JobPatch{Title: strPtr("  <b>Go</b> ")})
	require.NotNil(t, p.Title)
	assert.Equal(t, "Go", *p.Title)
	assert.Nil(t, p.Company)
}

func TestNormalizeCollapsesGapsLeftByMarkup(t *testing.T) {
	got := job.NormalizeFields(domain.JobFields{
		Title:       "Senior <Go> Engineer",
		Description: "Line one  <br>  still one\nLine two",
	})

	assert.Equal(t, "Senior Engineer", got.Title)
	assert.Equal(t, "Line one still one\nLine two", got.Description)
}

func TestPrepareFieldsReportsMarkupOnlyFields(t *testing.T) {
	_, err := job.PrepareFields(domain.JobFields{
		Title:       "<Staff>",
		Company:     "",
		Location:    "NYC",
		Description: "Build",
	})

	var verrs job.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	got := map[string]string{}
	for _, fe := range verrs {
		got[fe.Field] = fe.Message
	}
	assert.Equal(t, map[string]string{
		"title":   "must not contain markup",
		"company": "is required",
	}, got)
}

func TestPreparePatchReportsMarkupOnlyFields(t *testing.T) {
	_, err := job.PreparePatch(domain.JobPatch{Location: strPtr("<br/>")})

	var verrs job.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, job.FieldError{Field: "location", Message: "must not contain markup"}, verrs[0])

	p, err := job.PreparePatch(domain.JobPatch{Title: strPtr(" Staff  <i>Go</i> Engineer ")})
	require.NoError(t, err)
	assert.Equal(t, "Staff Go Engineer", *p.Title)
}
