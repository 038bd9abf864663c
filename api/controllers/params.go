package controllers

import (
	"net/http"
	"strings"

	"github.com/quotedesk/quotedesk-backend/api/validators"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/pagination"
)

// parseListParams reads the shared list query surface: limit, cursor, sort
// and free-text search. Sort fields outside the whitelist are rejected, and
// so is a cursor combined with an explicit sort: cursors key on the default
// created_at/id ordering and cannot continue a differently-sorted page.
func parseListParams(r *http.Request, sortFields ...string) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil {
		return pagination.Params{}, err
	}

	sort, err := pagination.ParseSort(r.URL.Query().Get("sort"), sortFields...)
	if err != nil {
		return pagination.Params{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort")
	}

	cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))
	if cursor != "" && sort.Field != "" {
		return pagination.Params{}, pkgerrors.New(pkgerrors.CodeValidation, "cursor cannot be combined with sort")
	}

	return pagination.Params{
		Limit:  limit,
		Cursor: cursor,
		Sort:   sort,
		Search: validators.SanitizeString(r.URL.Query().Get("search"), 120),
	}, nil
}
