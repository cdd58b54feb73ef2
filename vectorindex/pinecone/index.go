package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lexaid/counsel/fault"
	"github.com/lexaid/counsel/vectorindex"
)

type pineconeIndex struct {
	options vectorindex.Options
	client  *http.Client
}

func (i *pineconeIndex) Upsert(ctx context.Context, entries []vectorindex.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	vectors := make([]vector, 0, len(entries))
	for _, entry := range entries {
		vectors = append(vectors, vector{
			Id:       entry.Id,
			Values:   entry.Values,
			Metadata: entry.Metadata,
		})
	}

	var rsp upsertResponse

	if err := i.do(ctx, "/vectors/upsert", upsertRequest{Vectors: vectors}, &rsp); err != nil {
		return err
	}

	return nil
}

func (i *pineconeIndex) Query(ctx context.Context, vec []float32, topK int) ([]vectorindex.Match, error) {
	if topK < 1 {
		return nil, nil
	}

	req := queryRequest{
		Vector:          vec,
		TopK:            topK,
		IncludeMetadata: true,
	}

	var rsp queryResponse

	if err := i.do(ctx, "/query", req, &rsp); err != nil {
		return nil, err
	}

	matches := make([]vectorindex.Match, 0, len(rsp.Matches))
	for _, m := range rsp.Matches {
		matches = append(matches, vectorindex.Match{
			Id:       m.Id,
			Score:    m.Score,
			Metadata: m.Metadata,
		})
	}

	return matches, nil
}

func (i *pineconeIndex) do(ctx context.Context, path string, req any, rsp any) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, i.options.Location+path, bytes.NewReader(data))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Api-Key", i.options.ApiKey)

	response, err := i.client.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", fault.ErrUpstream, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", fault.ErrUpstream, err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: pinecone http %d: %s", fault.ErrUpstream, response.StatusCode, string(payload))
	}

	if rsp != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, rsp); err != nil {
			return fmt.Errorf("%w: %v", fault.ErrUpstream, err)
		}
	}

	return nil
}

func NewIndex(opts ...vectorindex.Option) vectorindex.Index {
	options := vectorindex.NewOptions(opts...)

	if len(options.Location) == 0 {
		panic("missing location for pinecone index")
	}

	client := &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &pineconeIndex{
		options: options,
		client:  client,
	}
}
