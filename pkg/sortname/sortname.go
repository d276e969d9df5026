// Package sortname derives the "Last, First" form of an author's name used to
// order the author picker.
package sortname

import (
	"strings"
)

var (
	honorifics = wordSet("dr", "mr", "mrs", "ms", "prof", "rev", "sir", "dame", "lord", "lady")
	// Kept in the sort name because they tell people apart.
	generational = wordSet("jr", "sr", "junior", "senior", "ii", "iii", "iv")
	// Dropped from the sort name.
	credentials = wordSet("phd", "md", "jd", "edd", "mba", "ma", "ms", "ba", "bs", "esq", "obe", "cbe")
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// key lower-cases a word and drops the punctuation that varies between
// spellings, so "Ph.D.," and "phd" compare equal.
func key(word string) string {
	return strings.ToLower(strings.NewReplacer(".", "", ",", "").Replace(word))
}

// ForPerson converts a display name into its sort form.
//
//   - "George Orwell" -> "Orwell, George"
//   - "J.R.R. Tolkien" -> "Tolkien, J.R.R."
//   - "Martin Luther King Jr." -> "King, Martin Luther, Jr."
//   - "Dr. Maya Angelou PhD" -> "Angelou, Maya"
//   - "Ludwig van Beethoven" -> "Beethoven, Ludwig van"
//
// Single-word names are returned unchanged.
func ForPerson(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return strings.Join(parts, " ")
	}

	for len(parts) > 1 && honorifics[key(parts[0])] {
		parts = parts[1:]
	}

	var suffixes []string
	for len(parts) > 1 {
		last := parts[len(parts)-1]
		k := key(last)
		if generational[k] {
			suffixes = append([]string{strings.TrimSuffix(last, ",")}, suffixes...)
		} else if !credentials[k] {
			break
		}
		parts = parts[:len(parts)-1]
	}

	surname := strings.TrimSuffix(parts[len(parts)-1], ",")
	given := parts[:len(parts)-1]
	for i := range given {
		given[i] = strings.TrimSuffix(given[i], ",")
	}

	// Particles ("van", "de") stay with the given names: "Beethoven, Ludwig van".
	out := []string{surname}
	if len(given) > 0 {
		out = append(out, strings.Join(given, " "))
	}
	out = append(out, suffixes...)
	return strings.Join(out, ", ")
}

