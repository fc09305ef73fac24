package collector

import (
	"context"
	"testing"
)

const goodDockerfile = `FROM golang:1.25-alpine AS build
WORKDIR /app
COPY . .
RUN go build -o server .

FROM alpine:3.20
COPY --from=build /app/server /usr/local/bin/server
HEALTHCHECK CMD wget -q --spider http://localhost:8080/healthz
USER nobody
ENTRYPOINT ["server"]
`

const badDockerfile = `FROM ubuntu:latest
RUN apt-get update
CMD ["bash"]
`

func TestDockerLintScoring(t *testing.T) {
	tests := []struct {
		name       string
		dockerfile string
		wantScore  int
		wantPinned bool
	}{
		{"all practices", goodDockerfile, 4, true},
		{"latest tag root single stage", badDockerfile, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeRepoFile(t, dir, "Dockerfile", tt.dockerfile)

			metrics, err := NewDockerLint().Collect(context.Background(), dir)
			if err != nil {
				t.Fatalf("Collect: %v", err)
			}
			if got := findMetric(t, metrics, "repo.docker.best_practices_score").Value.(int); got != tt.wantScore {
				t.Errorf("score = %d, want %d", got, tt.wantScore)
			}
			if got := findMetric(t, metrics, "repo.docker.has_pinned_tag").Value.(bool); got != tt.wantPinned {
				t.Errorf("pinned = %v, want %v", got, tt.wantPinned)
			}
		})
	}
}

func TestDockerLintScratchExempt(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "Dockerfile", "FROM scratch\nCOPY server /\n")

	metrics, err := NewDockerLint().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if !findMetric(t, metrics, "repo.docker.has_pinned_tag").Value.(bool) {
		t.Error("scratch base should not count as an unpinned tag")
	}
}

func TestDockerLintNoDockerfile(t *testing.T) {
	metrics, err := NewDockerLint().Collect(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(metrics) != 0 {
		t.Errorf("expected no metrics without a Dockerfile, got %d", len(metrics))
	}
}
