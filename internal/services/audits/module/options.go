package module

import (
	"asolens/internal/platform/config"
)

// Options holds configuration settings for the audits module
type Options struct {
	MinLength      int
	MaxLength      int
	HardCap        int
	MaxAlphabet    int
	TopN           int
	Workers        int
	MaxCompetitors int
	Stopwords      []string
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("CORE_AUDIT_")
	return Options{
		MinLength:      af.MayInt("MIN_LEN", 2),
		MaxLength:      af.MayInt("MAX_LEN", 4),
		HardCap:        af.MayInt("HARD_CAP", 2500),
		MaxAlphabet:    af.MayInt("MAX_ALPHABET", 40),
		TopN:           af.MayInt("TOP_N", 15),
		Workers:        af.MayInt("WORKERS", 4),
		MaxCompetitors: af.MayInt("MAX_COMPETITORS", 10),
		Stopwords:      af.MayCSV("STOPWORDS", nil),
	}
}
