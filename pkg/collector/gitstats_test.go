package collector

import (
	"context"
	"math"
	"os/exec"
	"testing"
)

func TestContributorConcentration(t *testing.T) {
	tests := []struct {
		name          string
		commits       map[string]int
		total         int
		wantBusFactor int
		wantTopPct    float64
	}{
		{
			name:          "single author",
			commits:       map[string]int{"alice": 10},
			total:         10,
			wantBusFactor: 1,
			wantTopPct:    100,
		},
		{
			name:          "dominant author",
			commits:       map[string]int{"alice": 8, "bob": 1, "carol": 1},
			total:         10,
			wantBusFactor: 1,
			wantTopPct:    80,
		},
		{
			name:          "even split",
			commits:       map[string]int{"alice": 5, "bob": 5, "carol": 5, "dave": 5},
			total:         20,
			wantBusFactor: 2,
			wantTopPct:    25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			busFactor, topPct := contributorConcentration(tt.commits, tt.total)
			if busFactor != tt.wantBusFactor {
				t.Errorf("bus factor = %d, want %d", busFactor, tt.wantBusFactor)
			}
			if math.Abs(topPct-tt.wantTopPct) > 1e-9 {
				t.Errorf("top contributor pct = %v, want %v", topPct, tt.wantTopPct)
			}
		})
	}
}

func TestTopChangedFiles(t *testing.T) {
	changes := map[string]int{
		"core.go":    10,
		"api.go":     8,
		"util.go":    1,
		"readme.md":  1,
		"config.go":  1,
		"handler.go": 1,
	}

	got := topChangedFiles(changes, 5)
	if len(got) != 2 {
		t.Fatalf("hotspots = %v, want [core.go api.go]", got)
	}
	if got[0] != "core.go" || got[1] != "api.go" {
		t.Errorf("hotspots = %v, want [core.go api.go]", got)
	}
}

func TestGitStatsRealRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(cmd.Environ(),
			"GIT_AUTHOR_NAME=alice", "GIT_AUTHOR_EMAIL=alice@example.com",
			"GIT_COMMITTER_NAME=alice", "GIT_COMMITTER_EMAIL=alice@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init")
	writeRepoFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")
	run("add", ".")
	run("commit", "-m", "initial")
	writeRepoFile(t, dir, "main.go", "package main\n\nimport \"fmt\"\n\nfunc main() { fmt.Println() }\n")
	run("add", ".")
	run("commit", "-m", "expand main")

	metrics, err := NewGitStats().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if got := findMetric(t, metrics, "repo.gitstats.bus_factor").Value.(int); got != 1 {
		t.Errorf("bus_factor = %d, want 1", got)
	}
	if got := findMetric(t, metrics, "repo.gitstats.top_contributor_percent").Value.(float64); got != 100 {
		t.Errorf("top_contributor_percent = %v, want 100", got)
	}
	if got := findMetric(t, metrics, "repo.gitstats.churn_30d").Value.(int); got <= 0 {
		t.Errorf("churn_30d = %d, want > 0", got)
	}
}

func TestGitStatsNotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	metrics, err := NewGitStats().Collect(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(metrics) != 0 {
		t.Errorf("expected no metrics outside a repository, got %d", len(metrics))
	}
}
