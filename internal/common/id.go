package common

import (
	"github.com/google/uuid"
)

// NewPropertyID generates a unique property ID with the "prop_" prefix
func NewPropertyID() string {
	return "prop_" + uuid.New().String()
}

// NewRequestID generates a unique analysis request ID with the "req_" prefix
func NewRequestID() string {
	return "req_" + uuid.New().String()
}

// NewReportID generates a unique analysis report ID with the "rpt_" prefix
func NewReportID() string {
	return "rpt_" + uuid.New().String()
}

// NewItemID generates a unique ID for news and review items
func NewItemID() string {
	return "item_" + uuid.New().String()
}
