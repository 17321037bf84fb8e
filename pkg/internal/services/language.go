package services

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// LanguageDetector returns the ISO 639-1 code of a text, or an empty string when unsure.
type LanguageDetector interface {
	Detect(text string) string
}

type linguaDetector struct {
	detector lingua.LanguageDetector
}

func NewLanguageDetector() LanguageDetector {
	return &linguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build(),
	}
}

func (v *linguaDetector) Detect(text string) string {
	if lang, ok := v.detector.DetectLanguageOf(text); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return ""
}
