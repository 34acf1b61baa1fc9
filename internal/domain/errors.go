package domain

import "errors"

var (
	ErrRateNotFound       = errors.New("rate not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCollectionNotFound = errors.New("collection not found")
)
