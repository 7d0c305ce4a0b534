package oven

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultDisplayChar renders manual heating progress.
const DefaultDisplayChar = "."

// FormatTimeDisplay renders M:SS only for 61..99 seconds, everything else as
// "<n>s". 60 and anything from 100 up stay in raw seconds.
func FormatTimeDisplay(seconds int) string {
	if seconds > 60 && seconds < 100 {
		return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatProgramDuration is the catalog formatter: M:SS above one minute.
func FormatProgramDuration(seconds int) string {
	if seconds > 60 {
		return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}

// ProgressString builds one segment per elapsed second, each segment being the
// display character repeated powerLevel times, joined by single spaces.
//
// The result grows linearly with elapsed time and is rebuilt on every status
// query. That is fine for programs up to two hours; longer cycles would need
// a capped rendering.
func ProgressString(displayChar string, powerLevel, elapsedSeconds int) string {
	if elapsedSeconds <= 0 {
		return ""
	}
	if powerLevel < 0 {
		powerLevel = 0
	}
	segment := strings.Repeat(firstChar(displayChar), powerLevel)

	var b strings.Builder
	b.Grow(elapsedSeconds * (len(segment) + 1))
	for i := 0; i < elapsedSeconds; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(segment)
	}
	return b.String()
}

func firstChar(s string) string {
	if s == "" {
		return DefaultDisplayChar
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return DefaultDisplayChar
	}
	return s[:size]
}
