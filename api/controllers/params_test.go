package controllers

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
)

func TestParseListParamsDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/quotations", nil)

	params, err := parseListParams(req, "created_at", "grand_total")
	if err != nil {
		t.Fatalf("parseListParams: %v", err)
	}
	if params.Limit != 20 || params.Cursor != "" || params.Sort.Field != "" {
		t.Fatalf("unexpected defaults: %+v", params)
	}
}

func TestParseListParamsRejectsUnknownSort(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/quotations?sort=address", nil)

	_, err := parseListParams(req, "created_at", "grand_total")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("error = %v, want validation code", err)
	}
}

func TestParseListParamsRejectsCursorWithSort(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/quotations?sort=grand_total&cursor=abc", nil)

	_, err := parseListParams(req, "created_at", "grand_total")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("error = %v, want validation code", err)
	}

	// cursor alone continues the default ordering
	req = httptest.NewRequest("GET", "/api/v1/quotations?cursor=abc", nil)
	params, err := parseListParams(req, "created_at", "grand_total")
	if err != nil {
		t.Fatalf("parseListParams with cursor only: %v", err)
	}
	if params.Cursor != "abc" {
		t.Fatalf("cursor = %q, want abc", params.Cursor)
	}
}
