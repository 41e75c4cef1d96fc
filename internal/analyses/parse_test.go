package analyses

import (
	"errors"
	"strings"
	"testing"
)

const basicReply = `{
  "meta": {"jobTitle": "Backend Engineer", "titleSimilarity": 80, "sourceValidated": true},
  "scores": {"atsScore": 72, "skillsMatch": 70, "experienceMatch": 75, "achievementsImpact": 60, "formatting": 85},
  "gapAnalysis": {"missingHardSkills": ["Kubernetes"], "missingSoftSkills": [], "partialMatches": ["Postgres"], "experienceYearsGap": 1, "roleGaps": ["on-call ownership"]},
  "recommendations": [{"priority": 1, "action": "Add Kubernetes projects", "reason": "Listed as required"}],
  "verification": {"status": "partial", "unconfirmedClaims": ["led a team of 10"]}
}`

const deepExtra = `,
  "deepDive": {
    "keywordAnalysis": {"densityScore": 55, "exactMatches": ["Go"], "partialMatches": ["SQL"], "missing": ["Kubernetes"]},
    "achievements": {"quantifiedCount": 2, "examples": ["cut latency 40%"]},
    "weakStatements": [{"before": "worked on backend", "after": "built the payments backend serving 2M users", "reason": "adds scope and scale"}],
    "competitivePositioning": "mid-pack for senior roles",
    "optimization": {"immediate": ["reorder skills section"], "longTerm": ["earn a cloud certification"]}
  },
  "readability": {"atsFriendliness": 78, "gradeLevel": 9, "passiveVoicePercent": 12}`

func proReply() string {
	return basicReply[:len(basicReply)-2] + deepExtra + "\n}"
}

func TestParseResultBasic(t *testing.T) {
	result, err := ParseResult(basicReply, TierBasic)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	basic, ok := result.(BasicAnalysis)
	if !ok {
		t.Fatalf("result type = %T, want BasicAnalysis", result)
	}
	if basic.Scores.ATSScore != 72 {
		t.Fatalf("atsScore = %d, want 72", basic.Scores.ATSScore)
	}
	if basic.Verification.Status != "partial" {
		t.Fatalf("verification status = %q", basic.Verification.Status)
	}
	if result.Tier() != TierBasic {
		t.Fatalf("tier = %q, want basic", result.Tier())
	}
}

func TestParseResultPro(t *testing.T) {
	result, err := ParseResult(proReply(), TierPro)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	deep, ok := result.(DeepAnalysis)
	if !ok {
		t.Fatalf("result type = %T, want DeepAnalysis", result)
	}
	if deep.DeepDive.KeywordAnalysis.DensityScore != 55 {
		t.Fatalf("densityScore = %d, want 55", deep.DeepDive.KeywordAnalysis.DensityScore)
	}
	if deep.Readability.GradeLevel != 9 {
		t.Fatalf("gradeLevel = %d, want 9", deep.Readability.GradeLevel)
	}
	if deep.Scores.ATSScore != 72 {
		t.Fatalf("embedded atsScore = %d, want 72", deep.Scores.ATSScore)
	}
}

func TestParseResultStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + basicReply + "\n```"
	if _, err := ParseResult(fenced, TierBasic); err != nil {
		t.Fatalf("ParseResult fenced: %v", err)
	}

	bare := "```\n" + basicReply + "\n```"
	if _, err := ParseResult(bare, TierBasic); err != nil {
		t.Fatalf("ParseResult bare fence: %v", err)
	}
}

func TestParseResultMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		tier Tier
	}{
		{name: "empty", raw: "", tier: TierBasic},
		{name: "prose", raw: "I could not analyze this resume.", tier: TierBasic},
		{name: "truncated json", raw: basicReply[:50], tier: TierBasic},
		{name: "missing scores", raw: strings.Replace(basicReply, `"scores"`, `"points"`, 1), tier: TierBasic},
		{name: "basic reply for pro tier", raw: basicReply, tier: TierPro},
		{name: "score out of range", raw: strings.Replace(basicReply, `"atsScore": 72`, `"atsScore": 140`, 1), tier: TierBasic},
		{name: "negative score", raw: strings.Replace(basicReply, `"titleSimilarity": 80`, `"titleSimilarity": -5`, 1), tier: TierBasic},
		{name: "bad verification status", raw: strings.Replace(basicReply, `"status": "partial"`, `"status": "maybe"`, 1), tier: TierBasic},
		{name: "zero priority", raw: strings.Replace(basicReply, `"priority": 1`, `"priority": 0`, 1), tier: TierBasic},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseResult(tc.raw, tc.tier)
			var merr *MalformedOutputError
			if !errors.As(err, &merr) {
				t.Fatalf("err = %v, want MalformedOutputError", err)
			}
			if merr.Raw != tc.raw {
				t.Fatalf("Raw not preserved")
			}
		})
	}
}

func TestParseResultRejectsUnknownTier(t *testing.T) {
	_, err := ParseResult(basicReply, Tier("gold"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}
