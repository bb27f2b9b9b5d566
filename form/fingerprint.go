package form

import (
	"hash/fnv"
	"math/bits"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StructureFingerprint computes a 64-bit SimHash of a form region's shape:
// the sequence of control tags, types, ids and names, ignoring values and
// option contents. Dropdown options change routinely (new members, new
// states); the fingerprint only moves when the form's layout itself does,
// which is the signal that a site update may have broken field mappings.
func StructureFingerprint(scope *goquery.Selection) uint64 {
	var tokens []string
	scope.FindMatcher(controlSel).Each(func(_ int, sel *goquery.Selection) {
		tag := goquery.NodeName(sel)
		typ := sel.AttrOr("type", "")
		id := sel.AttrOr("id", "")
		name := sel.AttrOr("name", "")
		tokens = append(tokens, tag+":"+typ+":"+id+":"+name)
	})
	if len(tokens) == 0 {
		return 0
	}

	shingles := makeShingles(tokens, 2)
	if len(shingles) == 0 {
		shingles = tokens
	}

	var vector [64]int
	for _, s := range shingles {
		h := fnv.New64a()
		h.Write([]byte(s))
		sum := h.Sum64()
		for i := 0; i < 64; i++ {
			if sum&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fp uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// FingerprintDistance returns the Hamming distance between two fingerprints.
func FingerprintDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Drifted reports whether two fingerprints differ enough to suggest the
// form's structure changed between observations.
func Drifted(a, b uint64) bool {
	const driftThreshold = 3
	return a != 0 && b != 0 && FingerprintDistance(a, b) > driftThreshold
}

// makeShingles creates n-gram shingles from a slice of tokens.
func makeShingles(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	shingles := make([]string, 0, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		shingles = append(shingles, strings.Join(tokens[i:i+n], "|"))
	}
	return shingles
}
