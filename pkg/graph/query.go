package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ramsey-B/clover/pkg/tracing"
)

// Summary is a snapshot of graph contents after a load.
type Summary struct {
	NodeCounts    map[string]int64 `json:"node_counts"`
	TransferCount int64            `json:"transfer_count"`
}

// Summarize counts nodes per label and inferred transfer edges. The loader
// logs this after a run so drift between runs is visible without opening a
// graph browser.
func (c *Client) Summarize(ctx context.Context) (*Summary, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.Client.Summarize")
	defer span.End()

	result, err := c.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		summary := &Summary{NodeCounts: make(map[string]int64)}

		res, err := tx.Run(ctx, "MATCH (n) UNWIND labels(n) AS label RETURN label, count(*) AS count", nil)
		if err != nil {
			return nil, err
		}
		for res.Next(ctx) {
			record := res.Record()
			label, _ := record.Get("label")
			count, _ := record.Get("count")
			name, ok := label.(string)
			if !ok {
				continue
			}
			n, ok := count.(int64)
			if !ok {
				continue
			}
			summary.NodeCounts[name] = n
		}
		if err := res.Err(); err != nil {
			return nil, err
		}

		res, err = tx.Run(ctx, fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r) AS count", RelTransferredTo), nil)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			if n, ok := res.Record().Get("count"); ok {
				if count, ok := n.(int64); ok {
					summary.TransferCount = count
				}
			}
		}
		if err := res.Err(); err != nil {
			return nil, err
		}

		return summary, nil
	})
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Error("Failed to summarize graph")
		return nil, fmt.Errorf("failed to summarize graph: %w", err)
	}

	return result.(*Summary), nil
}

// Labels returns the summarized labels in sorted order.
func (s *Summary) Labels() []string {
	labels := make([]string, 0, len(s.NodeCounts))
	for label := range s.NodeCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
