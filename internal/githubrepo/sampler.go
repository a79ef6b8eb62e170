package githubrepo

import (
	"github.com/src-d/enry/v2"
)

// Size bands in KB and the file caps applied to each. Larger repositories
// get a smaller sample so analysis time stays bounded.
const (
	smallRepoKB  = 1 * 1024
	mediumRepoKB = 10 * 1024
	largeRepoKB  = 100 * 1024

	smallRepoCap  = 400
	mediumRepoCap = 200
	largeRepoCap  = 120
	hugeRepoCap   = 60
)

// maxFileSizeBytes is the largest individual file worth analyzing.
const maxFileSizeBytes = 200 * 1024

// FileCapForSize returns how many files to analyze for a repository of the
// given size.
func FileCapForSize(sizeKB int) int {
	switch {
	case sizeKB <= smallRepoKB:
		return smallRepoCap
	case sizeKB <= mediumRepoKB:
		return mediumRepoCap
	case sizeKB <= largeRepoKB:
		return largeRepoCap
	default:
		return hugeRepoCap
	}
}

// SkipPath reports whether a tree entry should be excluded before download:
// vendored and generated directories, dotfiles, and oversized files.
func SkipPath(path string, sizeBytes int64) bool {
	if sizeBytes > maxFileSizeBytes {
		return true
	}

	return enry.IsVendor(path) || enry.IsDotFile(path) || enry.IsConfiguration(path)
}

// SkipContent reports whether downloaded content turned out unanalyzable.
func SkipContent(content []byte) bool {
	return enry.IsBinary(content)
}
