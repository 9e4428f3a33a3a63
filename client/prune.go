package client

import (
	"regexp"
	"strconv"

	"github.com/vegasq/sharecat/predicate"
)

var (
	integerPattern = regexp.MustCompile(`^-?\d+$`)
	floatPattern   = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// Prune drops file references whose partition metadata cannot match the
// predicates. It is advisory and safe: a predicate whose column is not part
// of a file's partition map never excludes that file, and the result is
// never larger than the input. With no predicates the input is returned
// unchanged.
func Prune(files []FileReference, preds []predicate.Predicate) []FileReference {
	if len(preds) == 0 {
		return files
	}

	kept := make([]FileReference, 0, len(files))
	for _, file := range files {
		if partitionMatches(file, preds) {
			kept = append(kept, file)
		}
	}
	return kept
}

// partitionMatches reports whether a file satisfies every predicate that
// applies to its partition map.
func partitionMatches(file FileReference, preds []predicate.Predicate) bool {
	for _, pred := range preds {
		raw, ok := file.PartitionValues[pred.Column]
		if !ok {
			// Partitioning scheme does not cover this column.
			continue
		}
		if !pred.Matches(coercePartitionValue(raw)) {
			return false
		}
	}
	return true
}

// coercePartitionValue turns a partition string into a typed value.
// Numeric-looking strings become integers or floats, everything else stays
// text.
func coercePartitionValue(raw string) predicate.Value {
	if integerPattern.MatchString(raw) {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return predicate.Int(i)
		}
	}
	if floatPattern.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return predicate.Float(f)
		}
	}
	return predicate.Text(raw)
}
