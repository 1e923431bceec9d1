package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"conversational-bi-backend/config"
	"conversational-bi-backend/internal/dto"
	"conversational-bi-backend/internal/repository"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/rs/zerolog/log"
)

type elasticsearchAuditRepository struct {
	esTypedClient *elasticsearch.TypedClient
	indexPrefix   string
}

func NewElasticsearchAuditRepository(cfg *config.Config) (repository.AuditRepository, error) {
	transport := &http.Transport{
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: time.Second * 10,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
	}
	esCfgForTyped := elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Transport: transport,
	}

	typedClient, err := elasticsearch.NewTypedClient(esCfgForTyped)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Typed Elasticsearch Client in Repository")
		return nil, err
	}

	return &elasticsearchAuditRepository{
		esTypedClient: typedClient,
		indexPrefix:   cfg.Elasticsearch.AskIndex,
	}, nil
}

func (r *elasticsearchAuditRepository) Search(ctx context.Context, req dto.AuditSearchRequest) (*dto.AuditSearchResponse, error) {
	indexPattern := fmt.Sprintf("%s-*", r.indexPrefix)
	queryParts := []types.Query{}

	if req.Text != "" {
		queryParts = append(queryParts, types.Query{
			QueryString: &types.QueryStringQuery{
				Query:  req.Text,
				Fields: []string{"question", "insight"},
				DefaultOperator: &operator.Operator{
					Name: "AND",
				},
			},
		})
	}

	if req.Intent != "" {
		queryParts = append(queryParts, types.Query{
			Term: map[string]types.TermQuery{
				"intent.keyword": {Value: req.Intent},
			},
		})
	}

	from := (req.Page - 1) * req.Size
	order := sortorder.Desc

	searchRequest := &search.Request{
		Query: &types.Query{
			Bool: &types.BoolQuery{
				Filter: queryParts,
			},
		},
		Size: &req.Size,
		From: &from,
		Sort: []types.SortCombinations{
			types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"askedAt": {Order: &order},
				},
			},
		},
	}

	res, err := r.esTypedClient.Search().
		Index(indexPattern).
		Request(searchRequest).
		Do(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error executing Elasticsearch search via TypedClient")
		return nil, fmt.Errorf("elasticsearch search failed: %w", err)
	}

	entries := make([]dto.AskAuditEntry, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var entry dto.AskAuditEntry
		if hit.Source_ != nil {
			if err := json.Unmarshal(hit.Source_, &entry); err != nil {
				log.Error().Err(err).Msg("Error unmarshalling Elasticsearch hit source")
				continue
			}
			entries = append(entries, entry)
		}
	}

	response := &dto.AuditSearchResponse{
		Entries: entries,
		Total:   res.Hits.Total.Value,
		Page:    req.Page,
		Size:    req.Size,
	}

	log.Debug().Int64("total_hits", response.Total).Int("returned_hits", len(response.Entries)).Msg("Audit search successful")
	return response, nil
}
