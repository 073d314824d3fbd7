package sales

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-28")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if d.String() != "2026-08-28" {
		t.Errorf("expected 2026-08-28, got %s", d)
	}

	if _, err := ParseDate("28/08/2026"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("expected error for empty date")
	}
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	d := DateOf(time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC))
	same := DateOf(time.Date(2026, 8, 28, 0, 0, 1, 0, time.UTC))
	if !d.Equal(same) {
		t.Error("expected times on the same day to map to equal dates")
	}
}

func TestDate_Between(t *testing.T) {
	from, _ := ParseDate("2026-01-01")
	to, _ := ParseDate("2026-01-31")
	mid, _ := ParseDate("2026-01-15")
	out, _ := ParseDate("2026-02-01")

	if !mid.Between(from, to) {
		t.Error("expected mid-January inside range")
	}
	if !from.Between(from, to) || !to.Between(from, to) {
		t.Error("expected range to be inclusive on both ends")
	}
	if out.Between(from, to) {
		t.Error("expected February outside range")
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d, _ := ParseDate("2026-08-28")
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshalling date: %v", err)
	}
	if string(raw) != `"2026-08-28"` {
		t.Errorf("expected quoted ISO date, got %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshalling date: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip changed date: %s", back)
	}
}

// The serialized sale always carries a computed total, never a stored one.
func TestSale_JSONIncludesComputedTotal(t *testing.T) {
	s := Sale{
		ID:              "sale-1",
		ProductID:       "prod-1",
		PaymentMethodID: "pm-1",
		Quantity:        3,
		UnitPrice:       decimal.NewFromFloat(5.00),
		Date:            Today(),
	}

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshalling sale: %v", err)
	}
	if !strings.Contains(string(raw), `"total":"15"`) {
		t.Errorf("expected total of 15 in payload, got %s", raw)
	}
}

func TestSale_TotalTracksEdits(t *testing.T) {
	s := Sale{Quantity: 3, UnitPrice: decimal.NewFromFloat(5.00)}
	if want := decimal.NewFromFloat(15.00); !s.Total().Equal(want) {
		t.Fatalf("expected total %s, got %s", want, s.Total())
	}

	s.Quantity = 10
	if want := decimal.NewFromFloat(50.00); !s.Total().Equal(want) {
		t.Errorf("expected total recomputed to %s, got %s", want, s.Total())
	}
}
