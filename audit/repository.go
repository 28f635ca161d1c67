// audit/repository.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type Repository interface {
	LogExpiration(ctx context.Context, log ExpirationLog) error
	QueryExpirations(ctx context.Context, from, to time.Time, fbid string) ([]ExpirationLog, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a new repository with a given Elasticsearch client URL.
func NewElasticsearchRepository(esURL, index string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient, index: index}, nil
}

// LogExpiration indexes one expiration record. Repeated applies for the same
// fbid produce separate documents.
func (r *ElasticsearchRepository) LogExpiration(ctx context.Context, log ExpirationLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: fmt.Sprintf("%d-%s", log.Timestamp.UnixNano(), log.FBID),
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source ExpirationLog `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// QueryExpirations returns records between from and to, optionally for one fbid.
func (r *ElasticsearchRepository) QueryExpirations(ctx context.Context, from, to time.Time, fbid string) ([]ExpirationLog, error) {
	must := []interface{}{
		map[string]interface{}{
			"range": map[string]interface{}{
				"timestamp": map[string]interface{}{
					"gte": from.Format(time.RFC3339),
					"lte": to.Format(time.RFC3339),
				},
			},
		},
	}
	if fbid != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"fbid": fbid},
		})
	}
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching documents: %s", res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	logs := make([]ExpirationLog, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		logs = append(logs, hit.Source)
	}
	return logs, nil
}
