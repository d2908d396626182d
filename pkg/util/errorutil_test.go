package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestMapErrorNilStaysNil(t *testing.T) {
	// A typed-nil *DomainError inside a non-nil interface would pass
	// err != nil checks upstream and crash the error middleware.
	if err := MapError(nil); err != nil {
		t.Fatalf("expected untyped nil, got %T(%v)", err, err)
	}
}

func TestMapErrorPreservesDomainError(t *testing.T) {
	original := NewConflict("slug already taken", nil)
	mapped := MapError(original)

	var domainErr *DomainError
	if !errors.As(mapped, &domainErr) {
		t.Fatalf("expected DomainError, got %T", mapped)
	}
	if domainErr.Code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %s", domainErr.Code)
	}
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	domainErr := ToDomainError(fmt.Errorf("load user: %w", pgx.ErrNoRows))
	if domainErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", domainErr.Code)
	}
	if domainErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", domainErr.HTTPStatus)
	}
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	if domainErr.Code != "INTERNAL_ERROR" {
		t.Fatalf("expected INTERNAL_ERROR, got %s", domainErr.Code)
	}
	if !errors.Is(domainErr, domainErr.Err) {
		t.Fatal("cause not preserved")
	}
}
