package domain

import (
	"errors"
	"testing"
)

func TestRunRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  RunRequest
		want error
	}{
		{"ok", RunRequest{Product: " Notion AI ", Query: "Notion AI new features", NumResults: 5, MaxMonthsOld: 6}, nil},
		{"bounds", RunRequest{Product: "P", Query: "q", NumResults: 10, MaxMonthsOld: 12}, nil},
		{"empty product", RunRequest{Product: " ", Query: "q", NumResults: 5, MaxMonthsOld: 6}, ErrEmptyProduct},
		{"empty query", RunRequest{Product: "P", Query: "  ", NumResults: 5, MaxMonthsOld: 6}, ErrEmptyQuery},
		{"zero results", RunRequest{Product: "P", Query: "q", NumResults: 0, MaxMonthsOld: 6}, ErrNumResultsRange},
		{"too many results", RunRequest{Product: "P", Query: "q", NumResults: 11, MaxMonthsOld: 6}, ErrNumResultsRange},
		{"too old", RunRequest{Product: "P", Query: "q", NumResults: 5, MaxMonthsOld: 13}, ErrMaxMonthsOldRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if err := req.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	req := RunRequest{Product: " Notion AI ", Query: " q ", NumResults: 1, MaxMonthsOld: 1}
	_ = req.Validate()
	if req.Product != "Notion AI" || req.Query != "q" {
		t.Errorf("Validate did not trim: %+v", req)
	}
}
