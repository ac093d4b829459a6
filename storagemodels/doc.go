/*
Package storagemodels defines the data structures shared by memstore data sources.

QueryParams:
Selects what a source streams. Without a key condition the source scans:

	params := &QueryParams{
	    KeyConditionExpression: "PK = :pk",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "CLUB#oakville"},
	    },
	}

StreamResult:
One streamed item with metadata. A result with Fatal set carries the error
that ended the stream; other results with an Error are item-level failures.

StreamOptions:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
