/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds entity types shared by data source tests.
package testmodels

import "github.com/go-openapi/strfmt"

// RatingSystem is a club rating system, keyed by ID.
type RatingSystem struct {
	ID          string           `json:"Id" dynamodbav:"ID"`
	Name        string           `json:"Name" dynamodbav:"Name"`
	Description string           `json:"Description,omitempty" dynamodbav:"Description,omitempty"`
	SiteURL     string           `json:"SiteUrl,omitempty" dynamodbav:"SiteUrl,omitempty"`
	CreatedAt   *strfmt.DateTime `json:"CreatedAt" dynamodbav:"CreatedAt,omitempty"`
}

// RatingSystemID is the identifier selector for RatingSystem stores.
func RatingSystemID(r RatingSystem) string {
	return r.ID
}
