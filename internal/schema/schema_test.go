package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/repoquant/repoquant/pkg/models"
)

func validResult() *models.ScoringResult {
	return &models.ScoringResult{
		RepoHealth:   models.NewRepoHealthScore(3, 2, 2, 1),
		TechDebt:     models.NewTechDebtScore(2, 2, 1, 2, 3),
		ProductLevel: models.LevelInternal,
		Complexity:   models.ComplexityM,
		Verdict:      "Internal Tool",
		Tasks: []models.Task{
			{Category: models.CategoryTesting, Priority: models.PriorityHigh, Title: "Raise test coverage"},
		},
	}
}

func TestValidateScoringAccepts(t *testing.T) {
	data, err := json.Marshal(validResult())
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateScoring(data); err != nil {
		t.Errorf("valid result rejected: %v", err)
	}
}

func TestValidateScoringRejectsBadLevel(t *testing.T) {
	data, err := json.Marshal(validResult())
	if err != nil {
		t.Fatal(err)
	}
	mangled := strings.Replace(string(data), "Internal Tool\",\"complexity", "Mystery Tier\",\"complexity", 1)

	err = ValidateScoring([]byte(mangled))
	if err == nil {
		t.Fatal("unknown product level accepted")
	}
}

func TestValidateScoringRejectsMissingVerdict(t *testing.T) {
	var raw map[string]json.RawMessage
	data, _ := json.Marshal(validResult())
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	delete(raw, "verdict")
	mangled, _ := json.Marshal(raw)

	if err := ValidateScoring(mangled); err == nil {
		t.Fatal("result without verdict accepted")
	}
}

func TestValidateScoringRejectsOutOfRangeSubScore(t *testing.T) {
	data, _ := json.Marshal(validResult())
	mangled := strings.Replace(string(data), "\"documentation\":3", "\"documentation\":7", 1)

	if err := ValidateScoring([]byte(mangled)); err == nil {
		t.Fatal("sub-score above 3 accepted")
	}
}

func TestValidateScoringRejectsGarbage(t *testing.T) {
	if err := ValidateScoring([]byte("{not json")); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}
