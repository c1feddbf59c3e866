package serpapi

import (
	"context"
	"errors"
	"testing"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/search"
)

func TestClient_Search(t *testing.T) {
	var gotParams map[string]string
	c := &Client{
		apiKey: "k",
		query: func(params map[string]string, apiKey string) (map[string]interface{}, error) {
			gotParams = params
			return map[string]interface{}{
				"organic_results": []interface{}{
					map[string]interface{}{"title": "A", "link": "https://a.com", "snippet": "sa", "date": "Jun 2, 2025"},
					map[string]interface{}{"title": "no link"},
					"garbage",
					map[string]interface{}{"title": "B", "link": "https://b.com"},
					map[string]interface{}{"title": "C", "link": "https://c.com"},
				},
			}, nil
		},
	}

	resp, err := c.Search(context.Background(), &search.Request{Query: "grammarly", MaxResults: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotParams["q"] != "grammarly" || gotParams["num"] != "2" {
		t.Errorf("params = %v", gotParams)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].PublishedDate != "Jun 2, 2025" || resp.Results[1].URL != "https://b.com" {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestClient_SearchErrors(t *testing.T) {
	if _, err := NewClient("").Search(context.Background(), &search.Request{Query: "q"}); err == nil {
		t.Error("expected error for missing api key")
	}

	c := &Client{apiKey: "k", query: func(map[string]string, string) (map[string]interface{}, error) {
		return nil, errors.New("boom")
	}}
	if _, err := c.Search(context.Background(), &search.Request{Query: "q"}); err == nil {
		t.Error("expected upstream error")
	}

	resp, err := (&Client{apiKey: "k", query: func(map[string]string, string) (map[string]interface{}, error) {
		return map[string]interface{}{}, nil
	}}).Search(context.Background(), &search.Request{Query: "q"})
	if err != nil || len(resp.Results) != 0 {
		t.Errorf("empty response = %+v, %v", resp, err)
	}
}
