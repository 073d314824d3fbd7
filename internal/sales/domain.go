package sales

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// saleZone is the reference time zone used to resolve "today". Colombia does
// not observe daylight saving, so the fixed-offset fallback is exact.
var saleZone = func() *time.Location {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		return time.FixedZone("America/Bogota", -5*60*60)
	}
	return loc
}()

// Date is a calendar date without a time-of-day component, serialized as
// "2006-01-02" in JSON and stored as a SQL DATE.
type Date struct {
	t time.Time
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in the reference time zone.
func Today() Date {
	return DateOf(time.Now().In(saleZone))
}

// ParseDate parses a date in "2006-01-02" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected %s", s, dateLayout)
	}
	return DateOf(t), nil
}

func (d Date) String() string { return d.t.Format(dateLayout) }

// After reports whether d is after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Before reports whether d is before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Between reports whether d falls within [from, to], inclusive on both ends.
func (d Date) Between(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so a Date can be written as a SQL DATE.
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Sale represents a committed sales transaction. UnitPrice is the price as
// transacted, captured at commit time and independent of the product's
// current catalog price.
type Sale struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Date            Date            `json:"date"`
}

// Total derives the sale total from quantity and unit price. It is computed
// on every read and never stored, so it cannot go stale when either field is
// edited later.
func (s Sale) Total() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// MarshalJSON always includes the computed total alongside the stored fields.
func (s Sale) MarshalJSON() ([]byte, error) {
	type alias Sale
	return json.Marshal(struct {
		alias
		Total decimal.Decimal `json:"total"`
	}{alias(s), s.Total()})
}
