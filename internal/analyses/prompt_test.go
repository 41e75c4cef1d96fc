package analyses

import (
	"errors"
	"strings"
	"testing"
)

func validRequest(tier Tier) Request {
	return Request{
		UserID:      "user-1",
		ResumeID:    "resume-1",
		Tier:        tier,
		JobTitle:    "Backend Engineer",
		CompanyName: "Acme",
		JobText:     "We need Go and Postgres experience.",
	}
}

func TestBuildPromptInterpolatesJobFields(t *testing.T) {
	prompt, err := BuildPrompt(validRequest(TierBasic), "Go developer since 2019.")
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if strings.Contains(prompt, "{{JOB_TITLE}}") || strings.Contains(prompt, "{{COMPANY_NAME}}") {
		t.Fatalf("prompt still contains placeholders:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"Backend Engineer"`) {
		t.Fatalf("prompt missing job title")
	}
	if !strings.Contains(prompt, `"Acme"`) {
		t.Fatalf("prompt missing company name")
	}
	if !strings.Contains(prompt, "Go developer since 2019.") {
		t.Fatalf("prompt missing resume text")
	}
	if !strings.Contains(prompt, "We need Go and Postgres experience.") {
		t.Fatalf("prompt missing job description")
	}
}

func TestBuildPromptProIncludesDeepSchema(t *testing.T) {
	prompt, err := BuildPrompt(validRequest(TierPro), "resume body")
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.Contains(prompt, `"deepDive"`) || !strings.Contains(prompt, `"readability"`) {
		t.Fatalf("pro prompt missing deep schema sections")
	}

	basic, err := BuildPrompt(validRequest(TierBasic), "resume body")
	if err != nil {
		t.Fatalf("BuildPrompt basic: %v", err)
	}
	if strings.Contains(basic, `"deepDive"`) {
		t.Fatalf("basic prompt should not request deep sections")
	}
}

func TestBuildPromptDefaultsCompanyName(t *testing.T) {
	req := validRequest(TierBasic)
	req.CompanyName = "  "
	prompt, err := BuildPrompt(req, "resume body")
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.Contains(prompt, `"the company"`) {
		t.Fatalf("prompt missing company fallback")
	}
}

func TestBuildPromptValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
		resume string
		field  string
	}{
		{name: "bad tier", mutate: func(r *Request) { r.Tier = "gold" }, resume: "x", field: "tier"},
		{name: "missing job title", mutate: func(r *Request) { r.JobTitle = " " }, resume: "x", field: "jobTitle"},
		{name: "missing job text", mutate: func(r *Request) { r.JobText = "" }, resume: "x", field: "jobText"},
		{name: "blank resume", mutate: func(r *Request) {}, resume: "  \n ", field: "resume"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(TierBasic)
			tc.mutate(&req)
			_, err := BuildPrompt(req, tc.resume)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestBuildPromptTruncatesLongInputs(t *testing.T) {
	req := validRequest(TierBasic)
	req.JobText = strings.Repeat("j", maxJobTextChars+5000)
	resume := strings.Repeat("r", maxResumeTextChars+5000)

	prompt, err := BuildPrompt(req, resume)
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if len(prompt) > maxJobTextChars+maxResumeTextChars+10000 {
		t.Fatalf("prompt length %d, inputs were not truncated", len(prompt))
	}
}
