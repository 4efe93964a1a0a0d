package handlers

const (
	defaultHistoryPageSize = 20
	maxHistoryPageSize     = 100 // Maximum page size for history listings
)
