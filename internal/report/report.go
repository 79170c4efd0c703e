// Package report renders ledger data as text tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/NgigiN/ledger/internal/ledger"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	return table
}

// Transactions writes an account's transactions.
func Transactions(w io.Writer, account string, txns []ledger.Transaction) {
	fmt.Fprintf(w, "Account: %s\n", strings.ToUpper(account))
	table := newTable(w, []string{"Date", "Txn Id", "Type", "Amount"})
	for _, t := range txns {
		table.Append([]string{t.Date, t.TxnID, string(t.Type), t.Amount.StringFixed(2)})
	}
	table.Render()
}

// Statement writes a monthly statement with the interest line last.
func Statement(w io.Writer, st *ledger.Statement) {
	fmt.Fprintf(w, "Account: %s\n", strings.ToUpper(st.Account))
	table := newTable(w, []string{"Date", "Txn Id", "Type", "Amount", "Balance"})
	for _, t := range st.Transactions {
		table.Append([]string{t.Date, t.TxnID, string(t.Type), t.Amount.StringFixed(2), t.Balance.StringFixed(2)})
	}
	in := st.Interest
	table.Append([]string{in.Date, "", ledger.InterestType, in.Amount.StringFixed(2), in.Balance.StringFixed(2)})
	table.Render()
}

// Rules writes the interest rules in the order given.
func Rules(w io.Writer, rules []ledger.InterestRule) {
	fmt.Fprintln(w, "Interest rules:")
	table := newTable(w, []string{"Date", "RuleId", "Rate (%)"})
	for _, r := range rules {
		table.Append([]string{r.Date, r.RuleID, r.Rate.StringFixed(2)})
	}
	table.Render()
}
