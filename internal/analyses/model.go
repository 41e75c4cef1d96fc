package analyses

import "time"

// Tier selects the depth of an analysis.
type Tier string

const (
	TierBasic Tier = "basic"
	TierPro   Tier = "pro"
)

// Valid reports whether the tier is one of the supported values.
func (t Tier) Valid() bool {
	return t == TierBasic || t == TierPro
}

// Request is the input to a single analysis run.
type Request struct {
	UserID      string
	ResumeID    string
	Tier        Tier
	JobTitle    string
	CompanyName string
	JobText     string
}

// Meta describes how the model understood the posting.
type Meta struct {
	JobTitle        string `json:"jobTitle"`
	TitleSimilarity int    `json:"titleSimilarity"`
	SourceValidated bool   `json:"sourceValidated"`
}

// Scores holds the integer fit scores, each in [0, 100].
type Scores struct {
	ATSScore           int `json:"atsScore"`
	SkillsMatch        int `json:"skillsMatch"`
	ExperienceMatch    int `json:"experienceMatch"`
	AchievementsImpact int `json:"achievementsImpact"`
	Formatting         int `json:"formatting"`
}

// GapAnalysis separates what the resume demonstrates from what it lacks.
type GapAnalysis struct {
	MissingHardSkills  []string `json:"missingHardSkills"`
	MissingSoftSkills  []string `json:"missingSoftSkills"`
	PartialMatches     []string `json:"partialMatches"`
	ExperienceYearsGap int      `json:"experienceYearsGap"`
	RoleGaps           []string `json:"roleGaps"`
}

// Recommendation is one concrete suggested improvement. Priority 1 is the
// most urgent.
type Recommendation struct {
	Priority int    `json:"priority"`
	Action   string `json:"action"`
	Reason   string `json:"reason"`
}

// Verification flags claims the job description cannot confirm.
type Verification struct {
	Status            string   `json:"status"`
	UnconfirmedClaims []string `json:"unconfirmedClaims"`
}

// BasicAnalysis is the result payload of a basic-tier run.
type BasicAnalysis struct {
	Meta            Meta             `json:"meta"`
	Scores          Scores           `json:"scores"`
	GapAnalysis     GapAnalysis      `json:"gapAnalysis"`
	Recommendations []Recommendation `json:"recommendations"`
	Verification    Verification     `json:"verification"`
}

// Tier implements Result.
func (BasicAnalysis) Tier() Tier { return TierBasic }

// KeywordAnalysis compares resume keywords against the job description.
type KeywordAnalysis struct {
	DensityScore   int      `json:"densityScore"`
	ExactMatches   []string `json:"exactMatches"`
	PartialMatches []string `json:"partialMatches"`
	Missing        []string `json:"missing"`
}

// Achievements counts how results-oriented the resume reads.
type Achievements struct {
	QuantifiedCount int      `json:"quantifiedCount"`
	Examples        []string `json:"examples"`
}

// WeakStatement is one resume line flagged for rewriting.
type WeakStatement struct {
	Before string `json:"before"`
	After  string `json:"after"`
	Reason string `json:"reason"`
}

// Optimization splits suggested actions by effort horizon.
type Optimization struct {
	Immediate []string `json:"immediate"`
	LongTerm  []string `json:"longTerm"`
}

// DeepDive is the extended breakdown only pro-tier runs produce.
type DeepDive struct {
	KeywordAnalysis        KeywordAnalysis `json:"keywordAnalysis"`
	Achievements           Achievements    `json:"achievements"`
	WeakStatements         []WeakStatement `json:"weakStatements"`
	CompetitivePositioning string          `json:"competitivePositioning"`
	Optimization           Optimization    `json:"optimization"`
}

// Readability scores the writing quality of the resume itself.
type Readability struct {
	ATSFriendliness     int `json:"atsFriendliness"`
	GradeLevel          int `json:"gradeLevel"`
	PassiveVoicePercent int `json:"passiveVoicePercent"`
}

// DeepAnalysis is the result payload of a pro-tier run. It is a strict
// superset of BasicAnalysis.
type DeepAnalysis struct {
	BasicAnalysis
	DeepDive    DeepDive    `json:"deepDive"`
	Readability Readability `json:"readability"`
}

// Tier implements Result.
func (DeepAnalysis) Tier() Tier { return TierPro }

// Result is the closed set of analysis payloads. Only BasicAnalysis and
// DeepAnalysis implement it.
type Result interface {
	Tier() Tier
}

// Record is a persisted analysis. DeepDive and Readability are nil for
// basic-tier records.
type Record struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	ResumeID        string           `json:"resumeId"`
	Tier            Tier             `json:"tier"`
	JobTitle        string           `json:"jobTitle"`
	CompanyName     string           `json:"companyName"`
	CostCredits     int              `json:"costCredits"`
	Meta            Meta             `json:"meta"`
	Scores          Scores           `json:"scores"`
	GapAnalysis     GapAnalysis      `json:"gapAnalysis"`
	Recommendations []Recommendation `json:"recommendations"`
	Verification    Verification     `json:"verification"`
	DeepDive        *DeepDive        `json:"deepDive,omitempty"`
	Readability     *Readability     `json:"readability,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// Result reconstructs the typed payload from a record.
func (r Record) Result() Result {
	basic := BasicAnalysis{
		Meta:            r.Meta,
		Scores:          r.Scores,
		GapAnalysis:     r.GapAnalysis,
		Recommendations: r.Recommendations,
		Verification:    r.Verification,
	}
	if r.Tier == TierPro && r.DeepDive != nil && r.Readability != nil {
		return DeepAnalysis{
			BasicAnalysis: basic,
			DeepDive:      *r.DeepDive,
			Readability:   *r.Readability,
		}
	}
	return basic
}

// NewRecord builds a Record from a parsed result.
func NewRecord(id string, req Request, cost int, result Result, at time.Time) Record {
	rec := Record{
		ID:          id,
		UserID:      req.UserID,
		ResumeID:    req.ResumeID,
		Tier:        result.Tier(),
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
		CostCredits: cost,
		CreatedAt:   at,
	}
	switch v := result.(type) {
	case BasicAnalysis:
		rec.Meta = v.Meta
		rec.Scores = v.Scores
		rec.GapAnalysis = v.GapAnalysis
		rec.Recommendations = v.Recommendations
		rec.Verification = v.Verification
	case DeepAnalysis:
		rec.Meta = v.Meta
		rec.Scores = v.Scores
		rec.GapAnalysis = v.GapAnalysis
		rec.Recommendations = v.Recommendations
		rec.Verification = v.Verification
		deep := v.DeepDive
		read := v.Readability
		rec.DeepDive = &deep
		rec.Readability = &read
	}
	return rec
}

// HistorySnapshot is the compact list entry stored alongside each record.
type HistorySnapshot struct {
	AnalysisID  string    `json:"analysisId"`
	UserID      string    `json:"userId"`
	ResumeID    string    `json:"resumeId"`
	Tier        Tier      `json:"tier"`
	JobTitle    string    `json:"jobTitle"`
	CompanyName string    `json:"companyName"`
	ATSScore    int       `json:"atsScore"`
	CostCredits int       `json:"costCredits"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SnapshotOf derives the history entry from a record.
func SnapshotOf(rec Record) HistorySnapshot {
	return HistorySnapshot{
		AnalysisID:  rec.ID,
		UserID:      rec.UserID,
		ResumeID:    rec.ResumeID,
		Tier:        rec.Tier,
		JobTitle:    rec.JobTitle,
		CompanyName: rec.CompanyName,
		ATSScore:    rec.Scores.ATSScore,
		CostCredits: rec.CostCredits,
		CreatedAt:   rec.CreatedAt,
	}
}
