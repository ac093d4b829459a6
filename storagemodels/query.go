/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// QueryParams selects the items a data source streams into a store.
// An empty KeyConditionExpression means a full table scan.
type QueryParams struct {
	// TableName overrides the source's configured table when set.
	TableName string
	// KeyConditionExpression is the primary condition for the query.
	KeyConditionExpression string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeNames maps "#name" placeholders to attribute names.
	ExpressionAttributeNames map[string]string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// IndexName is optional if you wish to query a secondary index.
	IndexName *string
	// Limit caps the total number of items streamed; nil or 0 means no cap.
	Limit *int32
	// ScanIndexForward specifies the order for index traversal.
	ScanIndexForward *bool
}

// IsScan reports whether the params describe a scan rather than a query.
func (p *QueryParams) IsScan() bool {
	return p == nil || p.KeyConditionExpression == ""
}
