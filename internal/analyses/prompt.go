package analyses

import (
	"strings"

	"fitscan-backend/internal/llm"
)

const (
	maxJobTextChars    = 50000
	maxResumeTextChars = 50000
)

// BuildPrompt renders the tier's template with the request fields and
// appends the resume and job description bodies. It rejects requests that
// would produce a degenerate prompt.
func BuildPrompt(req Request, resumeText string) (string, error) {
	if !req.Tier.Valid() {
		return "", &ValidationError{Field: "tier", Reason: "must be 'basic' or 'pro'"}
	}
	if strings.TrimSpace(req.JobTitle) == "" {
		return "", &ValidationError{Field: "jobTitle", Reason: "is required"}
	}
	if strings.TrimSpace(req.JobText) == "" {
		return "", &ValidationError{Field: "jobText", Reason: "is required"}
	}
	if strings.TrimSpace(resumeText) == "" {
		return "", &ValidationError{Field: "resume", Reason: "has no extracted text"}
	}

	template, _ := llm.PromptTemplate(string(req.Tier))

	company := strings.TrimSpace(req.CompanyName)
	if company == "" {
		company = "the company"
	}

	replacer := strings.NewReplacer(
		"{{JOB_TITLE}}", strings.TrimSpace(req.JobTitle),
		"{{COMPANY_NAME}}", company,
	)

	var b strings.Builder
	b.WriteString(replacer.Replace(template))
	b.WriteString("\n\n--- RESUME ---\n")
	b.WriteString(truncate(resumeText, maxResumeTextChars))
	b.WriteString("\n\n--- JOB DESCRIPTION ---\n")
	b.WriteString(truncate(req.JobText, maxJobTextChars))
	return b.String(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Cut on a rune boundary.
	cut := max
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
