/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/memstore/storagemodels"
)

// QueryBuilder builds QueryParams for a partition of the table or of a
// secondary index.
type QueryBuilder struct {
	index   string
	pkAttr  string
	pkValue string
	skAttr  string
	skCond  string
	skVals  []string
	limit   int32
}

// Partition selects the items whose partition key attribute pkAttr equals value.
func Partition(pkAttr, value string) *QueryBuilder {
	return &QueryBuilder{pkAttr: pkAttr, pkValue: value}
}

// OnIndex queries the named secondary index instead of the table.
func (q *QueryBuilder) OnIndex(name string) *QueryBuilder {
	q.index = name
	return q
}

// SortKeyPrefix keeps items whose sort key starts with prefix.
func (q *QueryBuilder) SortKeyPrefix(skAttr, prefix string) *QueryBuilder {
	q.skAttr, q.skCond, q.skVals = skAttr, "begins_with(#sk, :sk0)", []string{prefix}
	return q
}

// SortKeyBetween keeps items whose sort key is in [start, end].
func (q *QueryBuilder) SortKeyBetween(skAttr, start, end string) *QueryBuilder {
	q.skAttr, q.skCond, q.skVals = skAttr, "#sk BETWEEN :sk0 AND :sk1", []string{start, end}
	return q
}

// Limit caps the number of items streamed.
func (q *QueryBuilder) Limit(n int32) *QueryBuilder {
	q.limit = n
	return q
}

// Build returns the QueryParams.
func (q *QueryBuilder) Build() *storagemodels.QueryParams {
	params := &storagemodels.QueryParams{
		KeyConditionExpression: "#pk = :pk",
		ExpressionAttributeNames: map[string]string{
			"#pk": q.pkAttr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: q.pkValue},
		},
	}

	if q.skCond != "" {
		params.KeyConditionExpression += " AND " + q.skCond
		params.ExpressionAttributeNames["#sk"] = q.skAttr
		for i, v := range q.skVals {
			params.ExpressionAttributeValues[fmt.Sprintf(":sk%d", i)] = &types.AttributeValueMemberS{Value: v}
		}
	}
	if q.index != "" {
		params.IndexName = aws.String(q.index)
	}
	if q.limit > 0 {
		params.Limit = aws.Int32(q.limit)
	}
	return params
}
