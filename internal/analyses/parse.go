package analyses

import (
	"encoding/json"
	"fmt"
	"strings"
)

// requiredKeys lists the top-level documents every reply must carry.
// Pro-tier replies must also carry the deep keys.
var (
	requiredKeys = []string{"meta", "scores", "gapAnalysis", "recommendations", "verification"}
	deepKeys     = []string{"deepDive", "readability"}
)

// ParseResult turns a raw model reply into a typed result for the tier.
// Any failure is reported as a MalformedOutputError carrying the raw reply.
func ParseResult(raw string, tier Tier) (Result, error) {
	cleaned := stripJSONFence(raw)
	if strings.TrimSpace(cleaned) == "" {
		return nil, &MalformedOutputError{Raw: raw, Err: fmt.Errorf("empty reply")}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		return nil, &MalformedOutputError{Raw: raw, Err: fmt.Errorf("not a JSON object: %w", err)}
	}
	for _, key := range requiredKeys {
		if _, ok := top[key]; !ok {
			return nil, &MalformedOutputError{Raw: raw, Err: fmt.Errorf("missing key %q", key)}
		}
	}

	switch tier {
	case TierPro:
		for _, key := range deepKeys {
			if _, ok := top[key]; !ok {
				return nil, &MalformedOutputError{Raw: raw, Err: fmt.Errorf("missing key %q", key)}
			}
		}
		var out DeepAnalysis
		if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
			return nil, &MalformedOutputError{Raw: raw, Err: err}
		}
		if err := validateDeep(out); err != nil {
			return nil, &MalformedOutputError{Raw: raw, Err: err}
		}
		return out, nil
	case TierBasic:
		var out BasicAnalysis
		if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
			return nil, &MalformedOutputError{Raw: raw, Err: err}
		}
		if err := validateBasic(out); err != nil {
			return nil, &MalformedOutputError{Raw: raw, Err: err}
		}
		return out, nil
	default:
		return nil, &ValidationError{Field: "tier", Reason: "must be 'basic' or 'pro'"}
	}
}

// stripJSONFence removes a surrounding markdown code fence if the model
// ignored the JSON-only instruction.
func stripJSONFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func validateBasic(a BasicAnalysis) error {
	scores := map[string]int{
		"scores.atsScore":           a.Scores.ATSScore,
		"scores.skillsMatch":        a.Scores.SkillsMatch,
		"scores.experienceMatch":    a.Scores.ExperienceMatch,
		"scores.achievementsImpact": a.Scores.AchievementsImpact,
		"scores.formatting":         a.Scores.Formatting,
		"meta.titleSimilarity":      a.Meta.TitleSimilarity,
	}
	for name, v := range scores {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s out of range: %d", name, v)
		}
	}
	switch a.Verification.Status {
	case "verified", "partial", "unconfirmed":
	default:
		return fmt.Errorf("verification.status unexpected: %q", a.Verification.Status)
	}
	for i, rec := range a.Recommendations {
		if rec.Priority < 1 {
			return fmt.Errorf("recommendations[%d].priority out of range: %d", i, rec.Priority)
		}
	}
	return nil
}

func validateDeep(a DeepAnalysis) error {
	if err := validateBasic(a.BasicAnalysis); err != nil {
		return err
	}
	scores := map[string]int{
		"deepDive.keywordAnalysis.densityScore": a.DeepDive.KeywordAnalysis.DensityScore,
		"readability.atsFriendliness":           a.Readability.ATSFriendliness,
		"readability.passiveVoicePercent":       a.Readability.PassiveVoicePercent,
	}
	for name, v := range scores {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s out of range: %d", name, v)
		}
	}
	if a.Readability.GradeLevel < 0 {
		return fmt.Errorf("readability.gradeLevel out of range: %d", a.Readability.GradeLevel)
	}
	if a.DeepDive.Achievements.QuantifiedCount < 0 {
		return fmt.Errorf("deepDive.achievements.quantifiedCount out of range: %d", a.DeepDive.Achievements.QuantifiedCount)
	}
	return nil
}
