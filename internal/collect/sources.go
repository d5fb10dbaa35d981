// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Source is one named feed in a sources file. Only URL is required.
type Source struct {
	Name string `yaml:"name,omitempty"`
	URL  string `yaml:"url"`
}

// sourcesFile is the on-disk representation of a feed source list.
type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads a YAML feed source list. A missing file is not an
// error: the caller may be configured through flags or environment alone.
// Sources without a URL are dropped.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing sources file %s: %w", path, err)
	}

	sources := make([]Source, 0, len(file.Sources))
	for _, s := range file.Sources {
		if strings.TrimSpace(s.URL) == "" {
			continue
		}
		s.URL = strings.TrimSpace(s.URL)
		sources = append(sources, s)
	}
	return sources, nil
}

// SplitFeedList parses a comma- or newline-separated feed list, as supplied
// through a flag or environment variable. Literal `\n` sequences are treated
// as newlines so multi-line lists survive single-line environment values.
func SplitFeedList(raw string) []string {
	raw = strings.ReplaceAll(raw, `\n`, "\n")
	var feeds []string
	for _, line := range strings.Split(raw, "\n") {
		for _, part := range strings.Split(line, ",") {
			if p := strings.TrimSpace(part); p != "" {
				feeds = append(feeds, p)
			}
		}
	}
	return feeds
}
