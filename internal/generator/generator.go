package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/nao1215/nymix/internal/wordlist"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Generator errors.
var (
	// ErrInvalidCount is returned when the requested count is not positive.
	ErrInvalidCount = errors.New("invalid count: must be a positive integer")

	// ErrInvalidLength is returned when the length bounds are inconsistent.
	ErrInvalidLength = errors.New("invalid length bounds: min must be >= 1 and max must be >= min")

	// ErrInvalidStyle is returned for an unknown composition style.
	ErrInvalidStyle = errors.New("invalid style: use concat or blend")

	// ErrInvalidCase is returned for an unknown case transform.
	ErrInvalidCase = errors.New("invalid case: use lower, title or upper")
)

// Style is the rule used to compose two words into one name.
type Style string

const (
	// StyleConcat joins two words whole: "nova" + "grid" = "novagrid".
	StyleConcat Style = "concat"

	// StyleBlend joins the leading half of the first word with the trailing
	// half of the second: "lumen" + "aurora" = "lumora".
	StyleBlend Style = "blend"
)

// ParseStyle converts a flag value to a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleConcat, "":
		return StyleConcat, nil
	case StyleBlend:
		return StyleBlend, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStyle, s)
	}
}

// Case is the casing applied to generated names.
type Case string

const (
	CaseLower Case = "lower"
	CaseTitle Case = "title"
	CaseUpper Case = "upper"
)

// ParseCase converts a flag value to a Case.
func ParseCase(s string) (Case, error) {
	switch Case(strings.ToLower(strings.TrimSpace(s))) {
	case CaseLower, "":
		return CaseLower, nil
	case CaseTitle:
		return CaseTitle, nil
	case CaseUpper:
		return CaseUpper, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCase, s)
	}
}

// Request describes a generation run.
type Request struct {
	// Themes selects word lists. Empty selects every registered theme.
	Themes []string

	// Count is the number of names wanted.
	Count int

	// MinLength and MaxLength bound the length of a name, hyphens included.
	MinLength int
	MaxLength int

	// Style is the composition rule for word pairs.
	Style Style

	// Case is applied to the final names.
	Case Case

	// AllowHyphen adds "a-b" variants of concatenated pairs.
	AllowHyphen bool

	// Blacklist holds substrings a name must not contain (case-insensitive).
	Blacklist []string

	// Seed makes the draw reproducible. Zero picks a time-based seed.
	Seed uint64
}

// Result is the output of Generate.
type Result struct {
	// Names are the generated names, sorted.
	Names []string

	// Requested is the count that was asked for.
	Requested int

	// Shortfall is how many names are missing because the candidate space
	// was exhausted. Zero when the request was met.
	Shortfall int

	// Space is the number of unique candidates that passed the filters.
	Space int

	// Seed is the seed actually used for the draw.
	Seed uint64
}

// Generate produces up to req.Count unique candidate names.
func Generate(reg *wordlist.Registry, req Request) (*Result, error) {
	if req.Count <= 0 {
		return nil, ErrInvalidCount
	}
	if req.MinLength < 1 || req.MaxLength < req.MinLength {
		return nil, ErrInvalidLength
	}
	if req.Style == "" {
		req.Style = StyleConcat
	}
	if req.Style != StyleConcat && req.Style != StyleBlend {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStyle, req.Style)
	}

	words, err := reg.Words(req.Themes...)
	if err != nil {
		return nil, err
	}

	candidates := candidateSpace(normalizeWords(words), req)

	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // Seed only drives name shuffling
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // Not security sensitive
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	n := min(req.Count, len(candidates))
	names := make([]string, n)
	caser := newCaser(req.Case)
	for i := range n {
		names[i] = caser(candidates[i])
	}
	sort.Strings(names)

	return &Result{
		Names:     names,
		Requested: req.Count,
		Shortfall: req.Count - n,
		Space:     len(candidates),
		Seed:      seed,
	}, nil
}

// candidateSpace enumerates every unique candidate that passes the filters,
// in deterministic order.
func candidateSpace(words []string, req Request) []string {
	blacklist := make([]string, 0, len(req.Blacklist))
	for _, b := range req.Blacklist {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			blacklist = append(blacklist, b)
		}
	}

	seen := make(map[string]bool)
	out := make([]string, 0)
	add := func(name string) {
		if seen[name] || len(name) < req.MinLength || len(name) > req.MaxLength {
			return
		}
		for _, b := range blacklist {
			if strings.Contains(name, b) {
				return
			}
		}
		seen[name] = true
		out = append(out, name)
	}

	for _, w := range words {
		add(w)
	}
	for i, a := range words {
		for j, b := range words {
			if i == j {
				continue
			}
			switch req.Style {
			case StyleBlend:
				add(blend(a, b))
			default:
				add(a + b)
				if req.AllowHyphen {
					add(a + "-" + b)
				}
			}
		}
	}
	return out
}

// blend joins the leading half of a (rounded up) with the trailing half of b.
func blend(a, b string) string {
	return a[:(len(a)+1)/2] + b[len(b)/2:]
}

// normalizeWords lower-cases words, strips accents and drops everything
// that is not an ASCII letter or digit, so names are valid domain labels.
// Words that normalize to nothing or to a duplicate are dropped.
func normalizeWords(words []string) []string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		s, _, err := transform.String(t, w)
		if err != nil {
			s = w
		}
		var sb strings.Builder
		for _, r := range strings.ToLower(s) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				sb.WriteRune(r)
			}
		}
		n := sb.String()
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// newCaser returns the function applying c to a name.
func newCaser(c Case) func(string) string {
	switch c {
	case CaseTitle:
		caser := cases.Title(language.Und)
		return caser.String
	case CaseUpper:
		caser := cases.Upper(language.Und)
		return caser.String
	default:
		return func(s string) string { return s }
	}
}
