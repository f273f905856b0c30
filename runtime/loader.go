package runtime

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"strings"

	"github.com/crazinneeees/svetofor/errors"
)

// WordlistData carries the result of the loading process including metadata for logging.
type WordlistData struct {
	Words   []string
	Sources []string
}

// WordlistLoader is responsible for reading and parsing reserved words from embedded files.
type WordlistLoader struct {
	fs embed.FS
}

// NewWordlistLoader creates a new instance of WordlistLoader with the provided embedded filesystem.
func NewWordlistLoader(f embed.FS) *WordlistLoader {
	return &WordlistLoader{fs: f}
}

// LoadAll scans the given directory path in the embedded FS, identifying .txt files
// as word dictionaries and parsing their contents into a unique list of words.
func (l *WordlistLoader) LoadAll(path string) (*WordlistData, error) {
	entries, err := fs.ReadDir(l.fs, path)
	if err != nil {
		return nil, err
	}

	var sources []string
	uniqueWords := make(map[string]struct{})

	for _, entry := range entries {
		// We only process files, skipping subdirectories
		if entry.IsDir() {
			continue
		}

		// Track the source based on the filename (e.g., "fr.txt" -> "fr")
		source := strings.TrimSuffix(entry.Name(), ".txt")
		sources = append(sources, source)

		// Read the file content
		data, err := l.fs.ReadFile(path + "/" + entry.Name())
		if err != nil {
			return nil, err
		}

		// Use a scanner to handle different line endings (\n vs \r\n) correctly
		// ⚠️Don't use strings.Split
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				uniqueWords[line] = struct{}{}
			}
		}

		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(uniqueWords) == 0 {
		return nil, errors.ErrEmptyWords
	}

	// Convert the map of unique words into a slice
	words := make([]string, 0, len(uniqueWords))
	for w := range uniqueWords {
		words = append(words, w)
	}

	return &WordlistData{
		Words:   words,
		Sources: sources,
	}, nil
}
