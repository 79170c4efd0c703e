package ledger

import (
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var maxRate = decimal.NewFromInt(100)

// RateSchedule holds effective-dated annual rates, at most one rule per date.
// The zero value is an empty schedule.
type RateSchedule struct {
	rules []InterestRule // ascending by Date
}

// NewRateSchedule builds a schedule from stored rules. A later rule for a
// date already seen replaces the earlier one.
func NewRateSchedule(rules []InterestRule) *RateSchedule {
	s := &RateSchedule{}
	for _, r := range rules {
		s.put(r)
	}
	return s
}

// Upsert sets the rule for date, replacing any rule already on that date.
func (s *RateSchedule) Upsert(date, ruleID string, rate decimal.Decimal) (InterestRule, error) {
	ruleID = strings.TrimSpace(ruleID)
	if date == "" || ruleID == "" {
		return InterestRule{}, invalid("date and rule id are required")
	}
	if _, err := ParseDate(date); err != nil {
		return InterestRule{}, err
	}
	if !rate.IsPositive() || rate.GreaterThan(maxRate) {
		return InterestRule{}, invalid("rate should be greater than 0 and at most 100, got %s", rate)
	}
	r := InterestRule{Date: date, RuleID: strings.ToUpper(ruleID), Rate: rate}
	s.put(r)
	return r, nil
}

func (s *RateSchedule) put(r InterestRule) {
	i := sort.Search(len(s.rules), func(i int) bool { return s.rules[i].Date >= r.Date })
	if i < len(s.rules) && s.rules[i].Date == r.Date {
		s.rules[i] = r
		return
	}
	s.rules = slices.Insert(s.rules, i, r)
}

// EffectiveRate returns the rate of the latest rule dated on or before day.
// ok is false when no rule applies yet.
func (s *RateSchedule) EffectiveRate(day string) (rate decimal.Decimal, ok bool) {
	if s == nil {
		return decimal.Zero, false
	}
	for i := len(s.rules) - 1; i >= 0; i-- {
		if s.rules[i].Date <= day {
			return s.rules[i].Rate, true
		}
	}
	return decimal.Zero, false
}

// All returns the rules in ascending date order.
func (s *RateSchedule) All() []InterestRule {
	if s == nil {
		return nil
	}
	return slices.Clone(s.rules)
}
