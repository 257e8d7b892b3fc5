package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// gradeRe matches the leading YDS pattern: "5." followed by the integer base
// and an optional modifier run of sub-grade letters, "+"/"-", and "/",
// e.g. "5.10a/b" -> base "10", modifier "a/b". Trailing text is ignored.
var gradeRe = regexp.MustCompile(`5\.(\d+)([a-dA-D+/-]*)`)

// UnknownGrade is returned for ratings with no parseable "5." pattern.
// It sits below every real roped grade so unparseable ratings never win a
// "hardest" comparison.
const UnknownGrade = 5.0

// NormalizeGrade converts a free-text YDS rating into a single comparable
// number: the integer base plus a sub-grade offset. Slash grades ("a/b")
// average the two offsets. The scale is approximate and used only for
// ordering and averaging, never for display.
func NormalizeGrade(rating string) float64 {
	m := gradeRe.FindStringSubmatch(rating)
	if m == nil {
		return UnknownGrade
	}

	base, err := strconv.Atoi(m[1])
	if err != nil {
		return UnknownGrade
	}
	modifier := strings.ToLower(m[2])

	if strings.Contains(modifier, "/") {
		parts := strings.SplitN(modifier, "/", 2)
		return float64(base) + (subGradeOffset(parts[0])+subGradeOffset(parts[1]))/2
	}

	offset := subGradeOffset(modifier)
	// A trailing "+"/"-" nudges the grade within its letter band regardless
	// of which letter matched, so "5.10c+" orders between "c" and "d".
	if strings.HasSuffix(modifier, "+") {
		offset += 0.05
	}
	if strings.HasSuffix(modifier, "-") {
		offset -= 0.05
	}
	return float64(base) + offset
}

// subGradeOffset maps a modifier to its offset within the base grade.
// Letter checks take priority over the bare "+"/"-" checks.
func subGradeOffset(modifier string) float64 {
	switch {
	case strings.Contains(modifier, "a"):
		return 0.0
	case strings.Contains(modifier, "b"):
		return 0.2
	case strings.Contains(modifier, "c"):
		return 0.4
	case strings.Contains(modifier, "d"):
		return 0.6
	case strings.Contains(modifier, "+"):
		return 0.1
	case strings.Contains(modifier, "-"):
		return -0.1
	}
	return 0
}

// GradeToken returns the coarse text bucket for the grade distribution:
// the rating text before the first space, or "Unknown" for blank ratings.
// This is deliberately distinct from NormalizeGrade and stays text-keyed.
func GradeToken(rating string) string {
	fields := strings.Fields(rating)
	if len(fields) == 0 {
		return "Unknown"
	}
	return fields[0]
}
