package metric

import (
	"fmt"
	"math"
	"strings"
)

// Metric identifies a similarity metric.
type Metric int

const (
	Jaccard Metric = iota
	Euclidean
	Canberra
	Cosine
	Pearson
)

// All lists every supported metric in canonical order.
var All = []Metric{Jaccard, Euclidean, Canberra, Cosine, Pearson}

func (m Metric) String() string {
	switch m {
	case Jaccard:
		return "jaccard"
	case Euclidean:
		return "euclidean"
	case Canberra:
		return "canberra"
	case Cosine:
		return "cosine"
	case Pearson:
		return "pearson"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// Parse resolves a metric by name. Unique prefixes are accepted,
// case-insensitively.
func Parse(name string) (Metric, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return 0, fmt.Errorf("empty metric name")
	}
	var matches []Metric
	for _, m := range All {
		if strings.HasPrefix(m.String(), q) {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return 0, fmt.Errorf("unknown metric %q", name)
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.String()
		}
		return 0, fmt.Errorf("ambiguous metric %q: matches %s", name, strings.Join(names, ", "))
	}
}

// Func computes the similarity of two equal-length vectors.
type Func func(a, b []float64) float64

// Provider returns the similarity function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case Jaccard:
		return jaccard, nil
	case Euclidean:
		return euclidean, nil
	case Canberra:
		return canberra, nil
	case Cosine:
		return cosine, nil
	case Pearson:
		return pearson, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

func equal(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// jaccard is the binary Jaccard similarity: shared nonzero features over
// features nonzero on either side. Two all-zero vectors count as identical.
func jaccard(a, b []float64) float64 {
	var inter, union float64
	for i := range a {
		an, bn := a[i] != 0, b[i] != 0
		if an && bn {
			inter++
		}
		if an || bn {
			union++
		}
	}
	if union == 0 {
		return 1
	}
	return inter / union
}

// euclidean maps L2 distance into (0, 1] via 1/(1+d).
func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return 1 / (1 + math.Sqrt(sum))
}

// canberra is the similarity form of the Canberra distance: one minus the
// mean term-wise relative difference. Terms where both sides are zero are
// excluded from the mean.
func canberra(a, b []float64) float64 {
	var sum float64
	var n int
	for i := range a {
		den := math.Abs(a[i]) + math.Abs(b[i])
		if den == 0 {
			continue
		}
		sum += math.Abs(a[i]-b[i]) / den
		n++
	}
	if n == 0 {
		return 1
	}
	return 1 - sum/float64(n)
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		// Undefined for zero-norm vectors; identity still scores 1.
		if equal(a, b) {
			return 1
		}
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func pearson(a, b []float64) float64 {
	n := float64(len(a))
	if n == 0 {
		return 1
	}
	var meanA, meanB float64
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= n
	meanB /= n
	var num, ssA, ssB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		num += da * db
		ssA += da * da
		ssB += db * db
	}
	if ssA == 0 || ssB == 0 {
		// Zero variance on either side leaves the correlation undefined;
		// identity still scores 1.
		if equal(a, b) {
			return 1
		}
		return 0
	}
	return num / math.Sqrt(ssA*ssB)
}
