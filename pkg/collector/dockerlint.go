package collector

import (
	"context"
	"strings"

	"github.com/repoquant/repoquant/pkg/models"
)

// DockerLint scores the Dockerfile against four best practices: running
// as a non-root user, declaring a healthcheck, pinning the base image
// tag, and using a multi-stage build. One point each, 0-4 total.
type DockerLint struct{}

// NewDockerLint creates the Docker lint collector.
func NewDockerLint() *DockerLint {
	return &DockerLint{}
}

// Name implements Collector.
func (c *DockerLint) Name() string { return "dockerlint" }

// Collect implements Collector.
func (c *DockerLint) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	path, ok := fileExists(repoPath, "Dockerfile", "dockerfile", "Containerfile")
	if !ok {
		return nil, nil
	}
	content, err := readFileCapped(path, 128<<10)
	if err != nil {
		return nil, nil
	}

	nonRoot := false
	healthcheck := false
	pinnedTag := true
	fromCount := 0

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "USER "):
			user := strings.TrimSpace(line[5:])
			if user != "root" && user != "0" {
				nonRoot = true
			}
		case strings.HasPrefix(upper, "HEALTHCHECK"):
			healthcheck = true
		case strings.HasPrefix(upper, "FROM "):
			fromCount++
			image := strings.Fields(line)[1]
			if image != "scratch" {
				if !strings.Contains(image, ":") || strings.HasSuffix(image, ":latest") {
					pinnedTag = false
				}
			}
		}
	}
	multiStage := fromCount >= 2

	score := 0
	for _, ok := range []bool{nonRoot, healthcheck, pinnedTag, multiStage} {
		if ok {
			score++
		}
	}

	info := func(name string, value any) models.Metric {
		return models.NewMetric(name, value, models.TypeInfo, models.SourceStructure, models.CategoryInfrastructure)
	}

	return []models.Metric{
		models.NewMetric(models.MetricDockerScore, score,
			models.TypeGauge, models.SourceStructure, models.CategoryInfrastructure),
		info(models.MetricDockerNonRoot, nonRoot),
		info(models.MetricDockerHealth, healthcheck),
		info(models.MetricDockerPinnedTag, pinnedTag),
		info(models.MetricDockerMultiStage, multiStage),
	}, nil
}
