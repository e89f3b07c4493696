// internal/app/store/storeutil/storeutil.go

// Package storeutil holds helpers shared by the Mongo stores.
package storeutil

import "go.mongodb.org/mongo-driver/mongo/options"

// defaultPageSize matches the admin image browser's page size.
const defaultPageSize = 100

// Paginate builds find options for a 1-based page. Non-positive values
// fall back to the first page at the default size.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return options.Find().SetLimit(limit).SetSkip((page - 1) * limit)
}
