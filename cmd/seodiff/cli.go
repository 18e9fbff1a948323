package main

import (
	"fmt"
	"os"
	"strings"
)

// readURLsFromFile reads one URL per line, skipping blank lines. Whitespace
// around each line is trimmed; validation of the URLs themselves happens in
// the job runner.
func readURLsFromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs found in %s", path)
	}

	return urls, nil
}
