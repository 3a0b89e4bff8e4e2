package fiscal

import (
	"strings"

	"github.com/fiscalmanager/backend/internal/domain/shared"
)

// TaxRegime is the Brazilian federal tax regime a company is enrolled in
type TaxRegime string

// Supported regimes. The values are the labels exchanged with clients.
const (
	SimplesNacional TaxRegime = "Simples Nacional"
	LucroPresumido  TaxRegime = "Lucro Presumido"
	LucroReal       TaxRegime = "Lucro Real"
)

// AllTaxRegimes lists the supported regimes in display order
func AllTaxRegimes() []TaxRegime {
	return []TaxRegime{SimplesNacional, LucroPresumido, LucroReal}
}

// ParseTaxRegime accepts the display label ("Lucro Real") or its compact
// form ("LucroReal", "lucro_real"), case-insensitively.
func ParseTaxRegime(s string) (TaxRegime, error) {
	key := normalizeRegime(s)
	for _, r := range AllTaxRegimes() {
		if normalizeRegime(string(r)) == key {
			return r, nil
		}
	}
	return "", shared.NewValidationError("regime_tributario",
		"regime tributário inválido: %q (use Simples Nacional, Lucro Presumido ou Lucro Real)", s)
}

func normalizeRegime(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

// IsValid reports whether r is one of the supported regimes
func (r TaxRegime) IsValid() bool {
	switch r {
	case SimplesNacional, LucroPresumido, LucroReal:
		return true
	}
	return false
}

// String returns the display label
func (r TaxRegime) String() string {
	return string(r)
}
