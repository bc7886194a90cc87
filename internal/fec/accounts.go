package fec

import "fmt"

// AccountRole identifies the business purpose of a journal line. The set is
// closed; only the entry builder produces roles.
type AccountRole string

const (
	RoleClientReceivable AccountRole = "CLIENT_RECEIVABLE"
	RoleSalesRevenue     AccountRole = "SALES_REVENUE"
	RoleVATCollected     AccountRole = "VAT_COLLECTED"
)

// Account pairs a chart-of-accounts code with its label.
type Account struct {
	Code  string
	Label string
}

var chartOfAccounts = map[AccountRole]Account{
	RoleClientReceivable: {Code: "411000", Label: "Clients - Ventes de biens et services"},
	RoleSalesRevenue:     {Code: "706000", Label: "Prestations de services"},
	RoleVATCollected:     {Code: "445710", Label: "TVA collectée"},
}

// AccountFor resolves a role to its ledger account. An unknown role is a
// programming error, not a runtime condition, so it panics.
func AccountFor(role AccountRole) Account {
	account, ok := chartOfAccounts[role]
	if !ok {
		panic(fmt.Sprintf("fec: no account mapped for role %q", role))
	}
	return account
}
