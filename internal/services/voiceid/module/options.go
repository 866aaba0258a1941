package module

import (
	"time"

	"minutes/internal/platform/config"
)

// Options configures the voiceid module
type Options struct {
	FingerprintURL     string
	FingerprintKey     string
	FingerprintTimeout time.Duration
	ClipBaseURL        string
	MinSegmentSeconds  float64
	TopN               int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	vf := cfg.Prefix("CORE_VOICEID_")
	return Options{
		FingerprintURL:     vf.MustString("FINGERPRINT_URL"),
		FingerprintKey:     vf.MayString("FINGERPRINT_KEY", ""),
		FingerprintTimeout: vf.MayDuration("FINGERPRINT_TIMEOUT", 60*time.Second),
		ClipBaseURL:        vf.MustString("CLIP_BASE_URL"),
		MinSegmentSeconds:  vf.MayFloat64("MIN_SEGMENT_SECONDS", 5),
		TopN:               vf.MayInt("TOP_N", 20),
	}
}
