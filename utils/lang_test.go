package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafetyNote(t *testing.T) {
	loc := NewLocalizer("en")

	assert.Equal(t, "This route passes near 3 reported danger zone(s). Consider an alternative if you can.",
		SafetyNote(loc, 3, 5))
	assert.Equal(t, "2 hazard report(s) in the area, none along this route.",
		SafetyNote(loc, 0, 2))
	assert.True(t, strings.HasPrefix(SafetyNote(loc, 0, 0), "No community hazard reports"))
}

func TestSafetyNoteFromAcceptLanguage(t *testing.T) {
	loc := NewLocalizer("zh-TW,zh;q=0.9,en;q=0.8")
	assert.Equal(t, "此路線經過 1 個通報的危險區域，如可能請改走其他路線。", SafetyNote(loc, 1, 1))
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	loc := NewLocalizer("xx")
	assert.True(t, strings.HasPrefix(Disclaimer(loc), "This information is for general guidance only"))
}
