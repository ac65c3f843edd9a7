package postgres

import "github.com/shopspring/decimal"

// scanMoney parses a NUMERIC column rendered as text. Monetary columns are
// fixed-point with 2 fractional digits; going through text keeps them exact.
func scanMoney(s string, d *decimal.Decimal) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
