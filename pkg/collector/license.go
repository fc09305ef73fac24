package collector

import (
	"context"
	"strings"

	"github.com/repoquant/repoquant/pkg/models"
)

// License detects the project license from LICENSE file content keyword
// matching and categorizes it into permissive/copyleft buckets.
type License struct{}

// NewLicense creates the license collector.
func NewLicense() *License {
	return &License{}
}

// Name implements Collector.
func (c *License) Name() string { return "license" }

type licenseSignature struct {
	name     string
	category string
	keywords []string
}

// Ordered by specificity: LGPL/AGPL before GPL, Apache before MIT-style
// fallthrough.
var licenseSignatures = []licenseSignature{
	{"AGPL-3.0", "copyleft", []string{"gnu affero general public license"}},
	{"LGPL", "copyleft", []string{"gnu lesser general public license"}},
	{"GPL", "copyleft", []string{"gnu general public license"}},
	{"MPL-2.0", "copyleft", []string{"mozilla public license"}},
	{"Apache-2.0", "permissive", []string{"apache license", "version 2.0"}},
	{"BSD", "permissive", []string{"redistribution and use in source and binary forms"}},
	{"MIT", "permissive", []string{"mit license", "permission is hereby granted, free of charge"}},
	{"Unlicense", "permissive", []string{"this is free and unencumbered software"}},
}

// Collect implements Collector.
func (c *License) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	path, ok := fileExists(repoPath, "LICENSE", "LICENSE.md", "LICENSE.txt", "COPYING", "LICENCE")
	if !ok {
		return nil, nil
	}

	content, err := readFileCapped(path, 64<<10)
	if err != nil {
		return nil, nil
	}
	text := strings.ToLower(content)

	name, category := "unknown", "unknown"
	for _, sig := range licenseSignatures {
		matched := true
		for _, kw := range sig.keywords {
			if !strings.Contains(text, kw) {
				matched = false
				break
			}
		}
		if matched {
			name, category = sig.name, sig.category
			break
		}
	}

	return []models.Metric{
		models.NewMetric(models.MetricLicenseName, name,
			models.TypeInfo, models.SourceStructure, models.CategoryDependencies),
		models.NewMetric(models.MetricLicenseCategory, category,
			models.TypeInfo, models.SourceStructure, models.CategoryDependencies),
	}, nil
}
