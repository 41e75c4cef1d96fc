package analyses

import (
	"reflect"
	"testing"
	"time"
)

func sampleBasic() BasicAnalysis {
	return BasicAnalysis{
		Meta:   Meta{JobTitle: "Backend Engineer", TitleSimilarity: 80, SourceValidated: true},
		Scores: Scores{ATSScore: 72, SkillsMatch: 70, ExperienceMatch: 75, AchievementsImpact: 60, Formatting: 85},
		GapAnalysis: GapAnalysis{
			MissingHardSkills:  []string{"Kubernetes"},
			MissingSoftSkills:  []string{},
			PartialMatches:     []string{"Postgres"},
			ExperienceYearsGap: 1,
			RoleGaps:           []string{"on-call ownership"},
		},
		Recommendations: []Recommendation{{Priority: 1, Action: "Add Kubernetes projects", Reason: "Listed as required"}},
		Verification:    Verification{Status: "partial", UnconfirmedClaims: []string{"led a team of 10"}},
	}
}

func sampleDeep() DeepAnalysis {
	return DeepAnalysis{
		BasicAnalysis: sampleBasic(),
		DeepDive: DeepDive{
			KeywordAnalysis:        KeywordAnalysis{DensityScore: 55, ExactMatches: []string{"Go"}, PartialMatches: []string{"SQL"}, Missing: []string{"Kubernetes"}},
			Achievements:           Achievements{QuantifiedCount: 2, Examples: []string{"cut latency 40%"}},
			WeakStatements:         []WeakStatement{{Before: "worked on backend", After: "built the payments backend", Reason: "adds scope"}},
			CompetitivePositioning: "mid-pack",
			Optimization:           Optimization{Immediate: []string{"reorder skills"}, LongTerm: []string{"cloud certification"}},
		},
		Readability: Readability{ATSFriendliness: 78, GradeLevel: 9, PassiveVoicePercent: 12},
	}
}

func TestRecordRoundTripBasic(t *testing.T) {
	req := validRequest(TierBasic)
	now := time.Now().UTC()
	rec := NewRecord("analysis-1", req, 2, sampleBasic(), now)

	if rec.Tier != TierBasic {
		t.Fatalf("tier = %q, want basic", rec.Tier)
	}
	if rec.DeepDive != nil || rec.Readability != nil {
		t.Fatalf("basic record should not carry deep sub-documents")
	}
	if rec.CostCredits != 2 {
		t.Fatalf("cost = %d, want 2", rec.CostCredits)
	}

	got, ok := rec.Result().(BasicAnalysis)
	if !ok {
		t.Fatalf("result type = %T, want BasicAnalysis", rec.Result())
	}
	if !reflect.DeepEqual(got, sampleBasic()) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, sampleBasic())
	}
}

func TestRecordRoundTripDeep(t *testing.T) {
	req := validRequest(TierPro)
	now := time.Now().UTC()
	rec := NewRecord("analysis-1", req, 6, sampleDeep(), now)

	if rec.Tier != TierPro {
		t.Fatalf("tier = %q, want pro", rec.Tier)
	}
	if rec.DeepDive == nil || rec.Readability == nil {
		t.Fatalf("pro record missing deep sub-documents")
	}

	got, ok := rec.Result().(DeepAnalysis)
	if !ok {
		t.Fatalf("result type = %T, want DeepAnalysis", rec.Result())
	}
	if !reflect.DeepEqual(got, sampleDeep()) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, sampleDeep())
	}
}

func TestSnapshotOfSummarizesRecord(t *testing.T) {
	req := validRequest(TierPro)
	rec := NewRecord("analysis-1", req, 6, sampleDeep(), time.Now().UTC())

	snap := SnapshotOf(rec)
	if snap.AnalysisID != rec.ID || snap.UserID != rec.UserID || snap.ResumeID != rec.ResumeID {
		t.Fatalf("snapshot identity mismatch: %+v", snap)
	}
	if snap.ATSScore != rec.Scores.ATSScore {
		t.Fatalf("snapshot atsScore = %d, want %d", snap.ATSScore, rec.Scores.ATSScore)
	}
	if snap.JobTitle != "Backend Engineer" || snap.CompanyName != "Acme" {
		t.Fatalf("snapshot job fields mismatch: %+v", snap)
	}
	if snap.CostCredits != 6 {
		t.Fatalf("snapshot cost = %d, want 6", snap.CostCredits)
	}
}

func TestTierValid(t *testing.T) {
	for tier, want := range map[Tier]bool{TierBasic: true, TierPro: true, "": false, "gold": false, "BASIC": false} {
		if got := tier.Valid(); got != want {
			t.Fatalf("Tier(%q).Valid() = %v, want %v", tier, got, want)
		}
	}
}
