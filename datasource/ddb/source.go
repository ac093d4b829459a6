/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/storagemodels"
)

// Source reads entities of type T from a DynamoDB table whose partition key
// holds the entity identifier. It implements datasource.Source[T].
type Source[T any] struct {
	client  API
	table   string
	keyAttr string
}

// New constructs a Source for type T.
func New[T any](client API, cfg Config) *Source[T] {
	keyAttr := cfg.KeyAttribute
	if keyAttr == "" {
		keyAttr = DefaultKeyAttribute
	}
	return &Source[T]{
		client:  client,
		table:   cfg.Table,
		keyAttr: keyAttr,
	}
}

// GetOne reads the item whose key attribute equals key.
func (s *Source[T]) GetOne(ctx context.Context, key string) (*T, error) {
	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			s.keyAttr: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if len(out.Item) == 0 {
		var zero T
		return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// page is one page of raw items plus the key to continue from.
type page struct {
	items   []map[string]types.AttributeValue
	lastKey map[string]types.AttributeValue
}

// Stream queries, or scans when params has no key condition, and sends every
// item. Failed pages are retried while the error is retryable; a page that
// still fails ends the stream with a fatal result.
func (s *Source[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.ApplyStreamOptions(opts...)
	if params == nil {
		params = &storagemodels.QueryParams{}
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)
	go s.streamWorker(ctx, params, options, resultCh)
	return resultCh
}

func (s *Source[T]) streamWorker(
	ctx context.Context,
	params *storagemodels.QueryParams,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var (
		itemIndex  int64
		pageNumber int
		errs       []error
		startKey   map[string]types.AttributeValue
	)
	startTime := time.Now()

	var remaining int32
	if params.Limit != nil {
		remaining = *params.Limit
	}

	send := func(r storagemodels.StreamResult[T]) bool {
		select {
		case <-ctx.Done():
			return false
		case resultCh <- r:
			return true
		}
	}

	reportProgress := func(done bool) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			Errors:         errs,
			StartTime:      startTime,
			Done:           done,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(itemIndex) / elapsed
		}
		options.ProgressHandler(progress)
	}

	for {
		if ctx.Err() != nil {
			return
		}

		pageSize := options.PageSize
		if remaining > 0 && (pageSize <= 0 || remaining < pageSize) {
			pageSize = remaining
		}

		p, err := s.fetchWithRetry(ctx, params, startKey, pageSize, options)
		if err != nil {
			send(storagemodels.StreamResult[T]{
				Error: fmt.Errorf("page %d failed: %w", pageNumber+1, err),
				Fatal: true,
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber + 1,
					Timestamp:  time.Now(),
				},
			})
			return
		}
		pageNumber++

		for _, item := range p.items {
			result := processItem[T](item, itemIndex, pageNumber)
			itemIndex++

			if result.Error != nil {
				errs = append(errs, result.Error)
				if options.ErrorHandler != nil && !options.ErrorHandler(result.Error) {
					result.Fatal = true
					send(result)
					return
				}
			}
			if !send(result) {
				return
			}
		}

		if params.Limit != nil && *params.Limit > 0 {
			remaining -= int32(len(p.items))
			if remaining <= 0 {
				break
			}
		}

		reportProgress(false)

		if len(p.lastKey) == 0 {
			break
		}
		startKey = p.lastKey
	}

	reportProgress(true)
}

// fetchWithRetry reads one page, retrying retryable errors with a linear backoff.
func (s *Source[T]) fetchWithRetry(
	ctx context.Context,
	params *storagemodels.QueryParams,
	startKey map[string]types.AttributeValue,
	pageSize int32,
	options storagemodels.StreamOptions,
) (page, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return page{}, err
		}

		p, err := s.fetch(ctx, params, startKey, pageSize)
		if err == nil {
			return p, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return page{}, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return page{}, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return page{}, fmt.Errorf("failed after %d retries: %w", options.MaxRetries, lastErr)
}

func (s *Source[T]) fetch(
	ctx context.Context,
	params *storagemodels.QueryParams,
	startKey map[string]types.AttributeValue,
	pageSize int32,
) (page, error) {
	table := params.TableName
	if table == "" {
		table = s.table
	}
	var limit *int32
	if pageSize > 0 {
		limit = aws.Int32(pageSize)
	}

	if params.IsScan() {
		out, err := s.client.Scan(ctx, &sdk.ScanInput{
			TableName:                 aws.String(table),
			FilterExpression:          params.FilterExpression,
			ExpressionAttributeNames:  params.ExpressionAttributeNames,
			ExpressionAttributeValues: params.ExpressionAttributeValues,
			IndexName:                 params.IndexName,
			Limit:                     limit,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return page{}, fmt.Errorf("scan error: %w", err)
		}
		return page{items: out.Items, lastKey: out.LastEvaluatedKey}, nil
	}

	out, err := s.client.Query(ctx, &sdk.QueryInput{
		TableName:                 aws.String(table),
		KeyConditionExpression:    aws.String(params.KeyConditionExpression),
		FilterExpression:          params.FilterExpression,
		ExpressionAttributeNames:  params.ExpressionAttributeNames,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		IndexName:                 params.IndexName,
		Limit:                     limit,
		ScanIndexForward:          params.ScanIndexForward,
		ExclusiveStartKey:         startKey,
	})
	if err != nil {
		return page{}, fmt.Errorf("query error: %w", err)
	}
	return page{items: out.Items, lastKey: out.LastEvaluatedKey}, nil
}

// processItem converts a DynamoDB item to a typed result
func processItem[T any](item map[string]types.AttributeValue, index int64, pageNumber int) storagemodels.StreamResult[T] {
	rawCopy := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		rawCopy[k] = v
	}

	result := storagemodels.StreamResult[T]{
		Raw: rawCopy,
		Meta: storagemodels.StreamMeta{
			Index:      index,
			PageNumber: pageNumber,
			Timestamp:  time.Now(),
		},
	}
	if err := attributevalue.UnmarshalMap(item, &result.Item); err != nil {
		result.Error = fmt.Errorf("failed to unmarshal item %d to %T: %w", index, result.Item, err)
	}
	return result
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var (
		throughput *types.ProvisionedThroughputExceededException
		limit      *types.RequestLimitExceeded
		internal   *types.InternalServerError
	)
	if stderrors.As(err, &throughput) || stderrors.As(err, &limit) || stderrors.As(err, &internal) {
		return true
	}

	var retryable interface{ RetryableError() bool }
	if stderrors.As(err, &retryable) {
		return retryable.RetryableError()
	}

	return false
}
