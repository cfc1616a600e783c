package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/speedrun-coding/backend/execsrvc"
	"github.com/speedrun-coding/backend/problem/domain"
)

// problemFile is the on-disk form of a problem. Harness files can be
// inlined with content or point to a file relative to the problem file.
type problemFile struct {
	Slug           string             `toml:"slug"`
	Title          string             `toml:"title"`
	Difficulty     string             `toml:"difficulty"`
	Tags           []string           `toml:"tags"`
	TimeThresholds []domain.Threshold `toml:"time_thresholds"`
	HarnessFiles   []harnessFile      `toml:"harness_files"`
}

type harnessFile struct {
	Filename string `toml:"filename"`
	Lang     string `toml:"lang"`
	Content  string `toml:"content"`
	Path     string `toml:"path"`
}

func loadProblem(path string) (domain.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Problem{}, fmt.Errorf("failed to read problem file: %w", err)
	}

	var pf problemFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return domain.Problem{}, fmt.Errorf("failed to parse problem file %s: %w", path, err)
	}

	p := domain.Problem{
		Slug:           pf.Slug,
		Title:          pf.Title,
		Tags:           pf.Tags,
		TimeThresholds: pf.TimeThresholds,
		Enabled:        true,
	}
	if pf.Difficulty != "" {
		p.Difficulty = &pf.Difficulty
	}

	dir := filepath.Dir(path)
	for _, hf := range pf.HarnessFiles {
		content := hf.Content
		if hf.Path != "" {
			b, err := os.ReadFile(filepath.Join(dir, hf.Path))
			if err != nil {
				return domain.Problem{}, fmt.Errorf("failed to read harness file %s: %w", hf.Path, err)
			}
			content = string(b)
		}
		filename := hf.Filename
		if filename == "" {
			filename = filepath.Base(hf.Path)
		}
		p.HarnessFiles = append(p.HarnessFiles, execsrvc.HarnessFile{
			Filename: filename,
			Lang:     hf.Lang,
			Content:  content,
		})
	}

	if err := p.Validate(); err != nil {
		return domain.Problem{}, fmt.Errorf("invalid problem file %s: %w", path, err)
	}
	return p, nil
}
