package roster

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Text returns the profile text blob used for both lexical scoring and embeddings.
func Text(p Profile) string {
	parts := []string{
		p.Name,
		p.Title,
		strings.Join(p.Skills, " "),
		strings.Join(p.Projects, " "),
		strings.Join(p.Domains, " "),
		p.Location,
		string(p.Availability),
		fmt.Sprintf("%d years", p.ExperienceYears),
	}
	return strings.Join(parts, " ")
}

// Hash returns a content hash (hex sha256) over the whole roster.
//
// Each profile is digested from its canonical JSON form. Digests are sorted
// before being combined, so the hash does not depend on roster order, while
// any change to any field of any profile changes it.
func Hash(profiles []Profile) string {
	digests := make([]string, 0, len(profiles))
	for _, p := range profiles {
		b, err := json.Marshal(p)
		if err != nil {
			// Profile has only plain fields; Marshal cannot fail.
			panic(err)
		}
		sum := sha256.Sum256(b)
		digests = append(digests, hex.EncodeToString(sum[:]))
	}
	sort.Strings(digests)

	h := sha256.New()
	for _, d := range digests {
		h.Write([]byte(d))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
