package models

import "testing"

func TestNewRepoHealthScore_ClampsAndTotals(t *testing.T) {
	s := NewRepoHealthScore(5, -1, 2, 3)
	if s.Documentation != 3 || s.Structure != 0 {
		t.Errorf("clamping failed: %+v", s)
	}
	if s.Total != 8 {
		t.Errorf("Total = %d, want 8", s.Total)
	}
	if s.MaxPossible != 12 {
		t.Errorf("MaxPossible = %d, want 12", s.MaxPossible)
	}
}

func TestNewTechDebtScore_Totals(t *testing.T) {
	s := NewTechDebtScore(3, 2, 1, 2, 3)
	if s.Total != 11 {
		t.Errorf("Total = %d, want 11", s.Total)
	}
	if s.MaxPossible != 15 {
		t.Errorf("MaxPossible = %d, want 15", s.MaxPossible)
	}
}

func TestClassifyProductLevel(t *testing.T) {
	tests := []struct {
		name   string
		health RepoHealthScore
		debt   TechDebtScore
		polish PolishSignals
		want   ProductLevel
	}{
		{
			name:   "near product with changelog",
			health: NewRepoHealthScore(3, 3, 2, 3), // 11
			debt:   NewTechDebtScore(3, 3, 2, 2, 3), // 13
			polish: PolishSignals{HasChangelog: true},
			want:   LevelNearProduct,
		},
		{
			name:   "near product scores without polish demotes",
			health: NewRepoHealthScore(3, 3, 2, 3),
			debt:   NewTechDebtScore(3, 3, 2, 2, 3),
			polish: PolishSignals{},
			want:   LevelPlatform,
		},
		{
			name:   "platform candidate",
			health: NewRepoHealthScore(2, 2, 2, 2), // 8
			debt:   NewTechDebtScore(2, 2, 2, 2, 2), // 10
			want:   LevelPlatform,
		},
		{
			name:   "internal tool",
			health: NewRepoHealthScore(2, 1, 2, 1), // 6
			debt:   NewTechDebtScore(2, 1, 1, 2, 1), // 7
			want:   LevelInternal,
		},
		{
			name:   "internal tool blocked by weak infrastructure",
			health: NewRepoHealthScore(2, 1, 2, 1),
			debt:   NewTechDebtScore(2, 2, 1, 1, 1), // 7 but infra=1
			want:   LevelPrototype,
		},
		{
			name:   "prototype by health alone",
			health: NewRepoHealthScore(2, 2, 0, 0), // 4
			debt:   NewTechDebtScore(1, 0, 0, 0, 0),
			want:   LevelPrototype,
		},
		{
			name:   "rnd spike",
			health: NewRepoHealthScore(1, 0, 0, 0),
			debt:   NewTechDebtScore(1, 1, 0, 0, 1), // 3
			want:   LevelRnDSpike,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyProductLevel(tt.health, tt.debt, tt.polish)
			if got != tt.want {
				t.Errorf("ClassifyProductLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerdict(t *testing.T) {
	strong := NewRepoHealthScore(2, 2, 1, 1)  // 6
	weak := NewRepoHealthScore(1, 1, 1, 1)    // 4
	lowDebt := NewTechDebtScore(1, 1, 0, 0, 1) // 3

	tests := []struct {
		name   string
		level  ProductLevel
		health RepoHealthScore
		debt   TechDebtScore
		want   string
	}{
		{"near product", LevelNearProduct, strong, lowDebt, "Near-Product"},
		{"platform", LevelPlatform, strong, lowDebt, "Platform Module Candidate"},
		{"internal", LevelInternal, strong, lowDebt, "Internal Tool"},
		{"strong prototype", LevelPrototype, strong, lowDebt, "R&D Prototype"},
		{"weak prototype", LevelPrototype, weak, lowDebt, "Archive / Reference Only"},
		{"spike", LevelRnDSpike, weak, lowDebt, "Archive / Reference Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verdict(tt.level, tt.health, tt.debt); got != tt.want {
				t.Errorf("Verdict() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyComplexity_Thresholds(t *testing.T) {
	tests := []struct {
		name string
		loc  int
		want Complexity
	}{
		{"small", 5000, ComplexityS},
		{"small boundary", 8000, ComplexityS},
		{"medium", 15000, ComplexityM},
		{"medium boundary", 40000, ComplexityM},
		{"large", 100000, ComplexityL},
		{"extra large", 200000, ComplexityXL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Neutral bump inputs: healthy debt, few deps, normal files.
			got := ClassifyComplexity(tt.loc, 10, 5, 200)
			if got != tt.want {
				t.Errorf("ClassifyComplexity(%d) = %q, want %q", tt.loc, got, tt.want)
			}
		})
	}
}

func TestClassifyComplexity_Monotonic(t *testing.T) {
	rank := map[Complexity]int{ComplexityS: 0, ComplexityM: 1, ComplexityL: 2, ComplexityXL: 3}
	prev := -1
	for _, loc := range []int{1000, 8000, 8001, 40000, 40001, 120000, 120001, 500000} {
		c := ClassifyComplexity(loc, 10, 5, 200)
		if rank[c] < prev {
			t.Fatalf("complexity decreased at loc=%d: %q", loc, c)
		}
		prev = rank[c]
	}
}

func TestClassifyComplexity_Bumps(t *testing.T) {
	tests := []struct {
		name    string
		loc     int
		debt    int
		deps    int
		avgLOC  float64
		want    Complexity
	}{
		{"high debt bumps S to M", 5000, 3, 5, 200, ComplexityM},
		{"many deps bump", 5000, 10, 31, 200, ComplexityM},
		{"scattered files bump", 5000, 10, 5, 40, ComplexityM},
		{"bump caps at XL", 500000, 3, 50, 10, ComplexityXL},
		{"no bump", 5000, 10, 5, 200, ComplexityS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyComplexity(tt.loc, tt.debt, tt.deps, tt.avgLOC)
			if got != tt.want {
				t.Errorf("ClassifyComplexity() = %q, want %q", got, tt.want)
			}
		})
	}
}
