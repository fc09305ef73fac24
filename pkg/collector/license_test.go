package collector

import (
	"context"
	"testing"
)

func TestLicenseDetection(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantName     string
		wantCategory string
	}{
		{
			name:         "mit",
			content:      "MIT License\n\nPermission is hereby granted, free of charge, to any person...",
			wantName:     "MIT",
			wantCategory: "permissive",
		},
		{
			name:         "apache",
			content:      "Apache License\nVersion 2.0, January 2004\n",
			wantName:     "Apache-2.0",
			wantCategory: "permissive",
		},
		{
			name:         "gpl",
			content:      "GNU GENERAL PUBLIC LICENSE\nVersion 3, 29 June 2007\n",
			wantName:     "GPL",
			wantCategory: "copyleft",
		},
		{
			name:         "agpl before gpl",
			content:      "GNU AFFERO GENERAL PUBLIC LICENSE\nVersion 3\n",
			wantName:     "AGPL-3.0",
			wantCategory: "copyleft",
		},
		{
			name:         "unrecognized",
			content:      "All rights reserved, internal use only.\n",
			wantName:     "unknown",
			wantCategory: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeRepoFile(t, dir, "LICENSE", tt.content)

			metrics, err := NewLicense().Collect(context.Background(), dir)
			if err != nil {
				t.Fatalf("Collect: %v", err)
			}
			if got := findMetric(t, metrics, "repo.license.name").Value.(string); got != tt.wantName {
				t.Errorf("license name = %q, want %q", got, tt.wantName)
			}
			if got := findMetric(t, metrics, "repo.license.category").Value.(string); got != tt.wantCategory {
				t.Errorf("license category = %q, want %q", got, tt.wantCategory)
			}
		})
	}
}

func TestLicenseMissing(t *testing.T) {
	metrics, err := NewLicense().Collect(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(metrics) != 0 {
		t.Errorf("expected no metrics without a license file, got %d", len(metrics))
	}
}
