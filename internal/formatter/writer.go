package formatter

import (
	"bufio"
	"fmt"
	"os"

	"github.com/desertthunder/spoconv/internal/shared"
)

// OutputPath joins dir and name without inserting a separator; dir is expected to end in one.
func OutputPath(dir, name string) string {
	return dir + name + ".txt"
}

// WriteTracks writes the listing to [OutputPath], creating dir when missing and truncating any
// existing file. header is written first when non-nil, even if empty. Returns the path written.
func WriteTracks(dir, name string, lines []string, header *string) (string, error) {
	if dir != "" {
		if err := shared.EnsureDir(dir); err != nil {
			return "", fmt.Errorf("%w: failed to create directory %s: %v", shared.ErrWriteFailed, dir, err)
		}
	}

	path := OutputPath(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if header != nil {
		w.WriteString(*header + "\n")
	}
	for _, line := range lines {
		w.WriteString(line + "\n")
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}

	return path, nil
}
