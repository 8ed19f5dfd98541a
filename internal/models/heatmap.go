package models

import "strings"

// Category classifies an image returned by the heatmap pipeline
type Category string

const (
	CategoryHeatmap          Category = "heatmap"
	CategoryResolutionMatrix Category = "resolution_matrix"
)

// ClassifyResource decides the category from the resource name.
// Anything whose path mentions "heatmap" is a heatmap.
func ClassifyResource(ref string) Category {
	if strings.Contains(ref, "heatmap") {
		return CategoryHeatmap
	}
	return CategoryResolutionMatrix
}

// Resource is one displayable image
type Resource struct {
	URL      string   `json:"url"`
	Category Category `json:"category"`
}

// HeatmapRequest is the body of POST /generate-heatmap
type HeatmapRequest struct {
	Ks []int `json:"ks"`
}

// HeatmapResponse is the success body of POST /generate-heatmap
type HeatmapResponse struct {
	ImageURL string `json:"imageUrl"`
}

// ErrorResponse is the failure body of POST /generate-heatmap
type ErrorResponse struct {
	Error string `json:"error"`
}
