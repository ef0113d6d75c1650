package http

import (
	"sort"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
)

type AccountResponse struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

type AccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// NewAccountsResponse renders snapshots sorted by client id, amounts at four
// decimal places like the CSV output.
func NewAccountsResponse(snapshots []core.Snapshot) AccountsResponse {
	accounts := make([]AccountResponse, 0, len(snapshots))
	for _, s := range snapshots {
		accounts = append(accounts, AccountResponse{
			Client:    uint16(s.Client),
			Available: s.Available.StringFixed(4),
			Held:      s.Held.StringFixed(4),
			Total:     s.Total.StringFixed(4),
			Locked:    s.Locked,
		})
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Client < accounts[j].Client })

	return AccountsResponse{Accounts: accounts}
}
