package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	daysInYear = decimal.NewFromInt(365)
)

// Period is a run of consecutive days sharing one end-of-day balance and
// one annual rate.
type Period struct {
	Start   string          `json:"startDate"`
	End     string          `json:"endDate"`
	Days    int             `json:"numDays"`
	Balance decimal.Decimal `json:"balance"`
	Rate    decimal.Decimal `json:"rate"`
}

// accruable drops anything that is not a deposit or withdrawal and sorts
// the rest by date, keeping the given order for equal dates.
func accruable(txns []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Type.valid() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Periods splits ym into maximal runs of equal end-of-day balance and rate.
//
// The end-of-day balance is carried forward from the last transaction day
// within ym and starts from zero on the first of the month; balances from
// earlier months are not inherited.
func Periods(txns []Transaction, schedule *RateSchedule, ym YearMonth) []Period {
	eod := make(map[string]decimal.Decimal)
	for _, t := range accruable(txns) {
		eod[t.Date] = t.Balance
	}

	var periods []Period
	carry := decimal.Zero
	for _, day := range ym.days() {
		if b, ok := eod[day]; ok {
			carry = b
		}
		rate, _ := schedule.EffectiveRate(day)
		if n := len(periods); n > 0 && periods[n-1].Balance.Equal(carry) && periods[n-1].Rate.Equal(rate) {
			periods[n-1].End = day
			periods[n-1].Days++
			continue
		}
		periods = append(periods, Period{Start: day, End: day, Days: 1, Balance: carry, Rate: rate})
	}
	return periods
}

// ComputeMonthlyInterest returns the interest accrued over ym, rounded to
// two decimal places. Days with no applicable rule earn nothing.
func ComputeMonthlyInterest(txns []Transaction, schedule *RateSchedule, ym YearMonth) decimal.Decimal {
	return interestFor(Periods(txns, schedule, ym))
}

func interestFor(periods []Period) decimal.Decimal {
	total := decimal.Zero
	for _, p := range periods {
		total = total.Add(p.Balance.Mul(p.Rate).Div(hundred).Mul(decimal.NewFromInt(int64(p.Days))))
	}
	return total.Div(daysInYear).Round(2)
}

// NewInterestEntry builds the statement line for interest accrued in ym.
// Its balance is the last transaction's balance plus the interest.
func NewInterestEntry(txns []Transaction, interest decimal.Decimal, ym YearMonth) InterestEntry {
	e := InterestEntry{Date: ym.LastDay(), Amount: interest, Balance: interest}
	if ts := accruable(txns); len(ts) > 0 {
		last := ts[len(ts)-1]
		e.Account = last.Account
		e.Balance = last.Balance.Add(interest)
	}
	return e
}
