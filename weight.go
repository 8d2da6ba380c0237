package dtab

import (
	"strings"

	"github.com/cockroachdb/apd/v2"
)

// DefaultWeight is the weight a Weighted node carries when the grammar's
// optional "number '*'" prefix is absent.
var DefaultWeight = apd.New(1, 0)

// parseWeight turns the raw digits the parser accumulated (already
// validated to contain at most one '.') into an arbitrary-precision
// decimal. A leading '.' with no integer part (".5") is normalized to
// "0.5" first: apd's grammar requires at least one digit before the
// point in some decimal libraries, and the dtab number grammar
// explicitly permits an empty integer part.
func parseWeight(raw string) (*apd.Decimal, error) {
	if strings.HasPrefix(raw, ".") {
		raw = "0" + raw
	}
	d, _, err := apd.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// showWeight renders a weight the way NameTree.Weighted.show does:
// a decimal with a trailing ".0" when the value is integer-valued, so
// 1 shows as "1.0" and 0.5 shows as "0.5". The value is reduced first
// (trailing fractional zeros stripped) so that two weights which are
// numerically equal but spelled with a different number of trailing
// zeros in the source text (e.g. "1.50" and "1.5") always render
// identically — matching the source's float-based weight formatting,
// which canonicalizes by value rather than by however many digits were
// typed, and keeping NameTree.Equal (defined via Show/String text)
// from drifting apart on numerically-identical weights.
func showWeight(w *apd.Decimal) string {
	s := w.Text('f')
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
