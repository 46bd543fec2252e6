package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/votann/ask-search-be/config"
	"github.com/votann/ask-search-be/types"
	"github.com/votann/ask-search-be/utils"
	"github.com/go-openapi/strfmt"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const BATCH_SIZE = 200

// VectorStore is the capability the coordinators need from the vector
// database: insert-or-replace keyed by logical id, and a collection count.
type VectorStore interface {
	EnsureCollection(ctx context.Context, collection string) error
	UpsertObject(ctx context.Context, collection string, record types.VectorRecord) error
	BatchUpsertObjects(ctx context.Context, collection string, records []types.VectorRecord) (int, error)
	Count(ctx context.Context, collection string) (int, error)
}

type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(cfg config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	clientCfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
		clientCfg.Headers = map[string]string{
			"X-Weaviate-Api-Key":     cfg.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}
	return &WeaviateStore{client: client}, nil
}

func classObject(collection string) *models.Class {
	return &models.Class{
		Class: collection,
		Properties: []*models.Property{
			{Name: "recordId", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "userId", DataType: []string{"text"}},
			{Name: "ts", DataType: []string{"text"}},
		},
		// Vectors are supplied by the embedding service, never computed
		// in Weaviate. Both pipelines must use the same embedding model.
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}
}

// EnsureCollection creates the class if it does not exist yet.
func (s *WeaviateStore) EnsureCollection(ctx context.Context, collection string) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to get schema: %v", types.ErrVectorStore, err)
	}
	for _, class := range schema.Classes {
		if class.Class == collection {
			return nil
		}
	}
	err = s.client.Schema().ClassCreator().WithClass(classObject(collection)).Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to create class %s: %v", types.ErrVectorStore, collection, err)
	}
	return nil
}

func recordProperties(record types.VectorRecord) map[string]interface{} {
	properties := map[string]interface{}{
		"recordId": record.ID,
		"content":  record.Text,
	}
	for key, value := range record.Metadata {
		properties[key] = value
	}
	return properties
}

func recordObject(collection string, record types.VectorRecord) *models.Object {
	obj := &models.Object{
		// Weaviate object ids must be UUIDs; deriving them from the
		// logical id makes the batch write an insert-or-replace.
		ID:         strfmt.UUID(utils.ObjectUUID(record.ID)),
		Class:      collection,
		Properties: recordProperties(record),
	}
	if record.Vector != nil {
		obj.Vector = record.Vector
	}
	return obj
}

// UpsertObject writes a single record, replacing any object previously
// written under the same logical id.
func (s *WeaviateStore) UpsertObject(ctx context.Context, collection string, record types.VectorRecord) error {
	resp, err := s.client.Batch().ObjectsBatcher().
		WithObjects(recordObject(collection, record)).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrVectorStore, err)
	}
	for _, res := range resp {
		if res.Result != nil && res.Result.Errors != nil && len(res.Result.Errors.Error) > 0 {
			return fmt.Errorf("%w: %s", types.ErrVectorStore, res.Result.Errors.Error[0].Message)
		}
	}
	return nil
}

// BatchUpsertObjects writes records in BATCH_SIZE groups and returns how
// many were written before the first failure. The remainder of the batch is
// not attempted.
func (s *WeaviateStore) BatchUpsertObjects(ctx context.Context, collection string, records []types.VectorRecord) (int, error) {
	total := len(records)
	written := 0
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			batcher = batcher.WithObjects(recordObject(collection, records[j]))
		}

		resp, err := batcher.Do(ctx)
		if err != nil {
			return written, fmt.Errorf("%w: failed to insert batch %d-%d: %v", types.ErrVectorStore, i, end, err)
		}
		for _, res := range resp {
			if res.Result != nil && res.Result.Errors != nil && len(res.Result.Errors.Error) > 0 {
				return written, fmt.Errorf("%w: %s", types.ErrVectorStore, res.Result.Errors.Error[0].Message)
			}
			written++
		}
	}
	return written, nil
}

// Count returns the number of objects in the collection.
func (s *WeaviateStore) Count(ctx context.Context, collection string) (int, error) {
	result, err := s.client.GraphQL().Aggregate().
		WithClassName(collection).
		WithFields(graphql.Field{Name: "meta", Fields: []graphql.Field{{Name: "count"}}}).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrVectorStore, err)
	}
	if len(result.Errors) > 0 {
		return 0, fmt.Errorf("%w: %s", types.ErrVectorStore, result.Errors[0].Message)
	}

	aggregate, ok := result.Data["Aggregate"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("%w: unexpected aggregate response", types.ErrVectorStore)
	}
	rows, ok := aggregate[collection].([]interface{})
	if !ok || len(rows) == 0 {
		return 0, nil
	}
	row, ok := rows[0].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("%w: unexpected aggregate response", types.ErrVectorStore)
	}
	meta, ok := row["meta"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("%w: unexpected aggregate response", types.ErrVectorStore)
	}
	count, ok := meta["count"].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: unexpected aggregate response", types.ErrVectorStore)
	}
	return int(count), nil
}
