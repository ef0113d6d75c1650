package http

import (
	"encoding/json"
	"net/http"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
)

//go:generate go tool go.uber.org/mock/mockgen -source=get_accounts.go -destination=get_accounts_mock.go -package=http

// AccountSource yields the end-of-run account snapshots. ok is false while
// the run is still in progress.
type AccountSource interface {
	Snapshots() ([]core.Snapshot, bool)
}

type Handler struct {
	accounts AccountSource
	logger   core.Logger
}

func NewHandler(accounts AccountSource, logger core.Logger) Handler {
	return Handler{
		accounts: accounts,
		logger:   logger,
	}
}

func (h Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshots, ok := h.accounts.Snapshots()
	if !ok {
		http.Error(w, "Run still in progress", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(NewAccountsResponse(snapshots)); err != nil {
		h.logger.ErrorContext(ctx, "Failed to encode accounts response", "error", err)
	}
}
