// internal/providers/elasticsearch.go
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type ElasticsearchSource struct {
	client        *elasticsearch.Client
	index         string
	timeout       time.Duration
	maxCandidates int
	logger        logger.Logger
}

func NewElasticsearchSource(client *elasticsearch.Client, index string, timeout time.Duration, maxCandidates int, log logger.Logger) *ElasticsearchSource {
	return &ElasticsearchSource{
		client:        client,
		index:         index,
		timeout:       timeout,
		maxCandidates: maxCandidates,
		logger:        log.WithFields(map[string]interface{}{"source": "elasticsearch", "index": index}),
	}
}

func (s *ElasticsearchSource) Name() string { return string(models.SourceKindElasticsearch) }

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string      `json:"_id"`
			Source rawProvider `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildCandidateQuery(serviceType models.ServiceType, city models.City) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"status": string(models.StatusApproved)}},
					map[string]interface{}{"term": map[string]interface{}{"services": string(serviceType)}},
					map[string]interface{}{"term": map[string]interface{}{"cities": string(city)}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"id": "asc"},
		},
	}
}

func (s *ElasticsearchSource) ListCandidates(ctx context.Context, serviceType models.ServiceType, city models.City) ([]models.Provider, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	body, err := json.Marshal(buildCandidateQuery(serviceType, city))
	if err != nil {
		return nil, errors.NewProviderQueryFailedError(s.Name(), err)
	}

	size := s.maxCandidates
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			metrics.ProviderSourceQueries.WithLabelValues(s.Name(), "timeout").Inc()
			return nil, errors.NewProviderQueryTimeoutError(s.Name())
		}
		metrics.ProviderSourceQueries.WithLabelValues(s.Name(), "error").Inc()
		return nil, errors.NewProviderQueryFailedError(s.Name(), err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		metrics.ProviderSourceQueries.WithLabelValues(s.Name(), "error").Inc()
		return nil, errors.NewProviderIndexNotFoundError(s.index)
	}
	if res.IsError() {
		metrics.ProviderSourceQueries.WithLabelValues(s.Name(), "error").Inc()
		return nil, errors.NewProviderQueryFailedError(s.Name(), fmt.Errorf("search returned %s", res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		metrics.ProviderSourceQueries.WithLabelValues(s.Name(), "error").Inc()
		return nil, errors.NewProviderDecodeFailedError(s.Name(), err)
	}

	raws := make([]rawProvider, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		raw := hit.Source
		if raw.ID == "" {
			raw.ID = hit.ID
		}
		raws = append(raws, raw)
	}

	metrics.ProviderSourceQueries.WithLabelValues(s.Name(), "success").Inc()
	return decodeRecords(raws, s.logger), nil
}
