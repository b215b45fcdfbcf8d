package recurrence

import (
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/vcf"
)

// Validate returns the files whose header carries an accepted source
// signature. Missing, unreadable and foreign files are logged and skipped.
func Validate(files []string, opts Options) []string {
	logger := opts.logger()
	sources := opts.sources()

	var valid []string
	for _, path := range files {
		header, err := vcf.ReadHeader(path)
		if err != nil {
			logger.Warn("skipping unreadable file", zap.String("file", path), zap.Error(err))
			continue
		}
		if !vcf.HasSource(header, sources) {
			logger.Warn("skipping file without recognized source",
				zap.String("file", path), zap.Strings("sources", sources))
			continue
		}
		valid = append(valid, path)
	}
	return valid
}
