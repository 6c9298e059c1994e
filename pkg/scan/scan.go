package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-errors/errors"
	"github.com/rs/zerolog/log"
)

// Finds every file under root whose name ends with suffix. WalkDir visits
// entries in lexical order, so the result is deterministic for a given tree.
func ObjectFiles(root string, suffix string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			return nil
		}

		if strings.HasSuffix(d.Name(), suffix) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	log.Debug().Str("root", root).Int("count", len(files)).Msg("Discovered object files")

	return files, nil
}
