package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/TadasTam/LiftSearch-Backend/internal/models"
)

const DefaultTripIndex = "trips"

func NewClient(url, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  username,
		Password:  password,
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return client, nil
}

// TripIndex mirrors trips into Elasticsearch for the full-text listing on
// GET /api/trips. A nil TripIndex is a no-op, the DB stays the source of
// truth either way.
type TripIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewTripIndex(es *elasticsearch.Client) *TripIndex {
	if es == nil {
		return nil
	}
	return &TripIndex{ES: es, Index: DefaultTripIndex}
}

// Enabled reports whether an Elasticsearch backend is wired in.
func (x *TripIndex) Enabled() bool {
	return x != nil
}

func (x *TripIndex) IndexTrip(ctx context.Context, trip *models.Trip) error {
	if x == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(trip); err != nil {
		return fmt.Errorf("index trip: encode: %w", err)
	}

	res, err := x.ES.Index(
		x.Index,
		&buf,
		x.ES.Index.WithContext(ctx),
		x.ES.Index.WithDocumentID(strconv.FormatUint(uint64(trip.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index trip: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index trip: %s", res.Status())
	}
	return nil
}

func (x *TripIndex) DeleteTrip(ctx context.Context, tripID uint) error {
	if x == nil {
		return nil
	}

	res, err := x.ES.Delete(
		x.Index,
		strconv.FormatUint(uint64(tripID), 10),
		x.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete trip from index: %w", err)
	}
	defer res.Body.Close()
	// 404 just means the trip was never indexed
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete trip from index: %s", res.Status())
	}
	return nil
}

func (x *TripIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.Trip, error) {
	if x == nil {
		return 0, nil, fmt.Errorf("search is not configured")
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"start_city^2", "end_city^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search trips: encode: %w", err)
	}

	res, err := x.ES.Search(
		x.ES.Search.WithContext(ctx),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search trips: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search trips: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Trip `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search trips: decode: %w", err)
	}

	trips := make([]models.Trip, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		trips[i] = hit.Source
	}
	return r.Hits.Total.Value, trips, nil
}
