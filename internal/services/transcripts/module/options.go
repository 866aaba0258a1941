package module

import (
	"minutes/internal/platform/config"
	"minutes/internal/services/transcripts/domain"
)

// Ports exposed by the transcripts module
type Ports struct {
	Writer  domain.WriterPort
	Reader  domain.ReaderPort
	Deleter domain.DeleterPort
}

// Options configures the transcripts module
type Options struct {
	HardLimit    int
	ArchiveTable string
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	tf := cfg.Prefix("CORE_TRANSCRIPTS_")
	return Options{
		HardLimit:    tf.MayInt("HARD_LIMIT", 5000),
		ArchiveTable: tf.MayString("ARCHIVE_TABLE", "token_archive"),
	}
}
