package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := map[Code]int{
		CodeValidation: http.StatusUnprocessableEntity,
		CodeDuplicate:  http.StatusBadRequest,
		CodeNotFound:   http.StatusNotFound,
		CodeStorage:    http.StatusInternalServerError,
		CodeDependency: http.StatusServiceUnavailable,
		CodeInternal:   http.StatusInternalServerError,
	}
	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Fatalf("code %s mapped to %d, want %d", code, got, status)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	if got := MetadataFor(Code("NOPE")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("unknown code mapped to %d", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("row missing")
	err := Wrap(CodeNotFound, cause, "ingredient not found")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if err.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsUnwrapsThroughFmtErrorf(t *testing.T) {
	inner := New(CodeDuplicate, "name taken").WithDetails(map[string]string{"name": "Flour"})
	wrapped := fmt.Errorf("creating ingredient: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error to be recovered")
	}
	if typed.Code() != CodeDuplicate {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	if typed.Details() == nil {
		t.Fatal("expected details to survive wrapping")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeStorage, stdErrors.New("commit failed"), "persisting list")
	dump := Dump(err)

	if dump.Code != CodeStorage {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", dump.Chain)
	}
}
