package heatmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jengzang/crosswell-viewer/internal/models"
)

// ErrUnrecognizedResponse is returned for bodies matching no known shape
var ErrUnrecognizedResponse = errors.New("unrecognized heatmap response")

// Kind tags the shape of a generation response
type Kind int

const (
	KindSingle Kind = iota + 1
	KindList
	KindCategorized
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindList:
		return "list"
	case KindCategorized:
		return "categorized"
	}
	return "unknown"
}

// Response is the tagged union of the shapes the endpoint may return:
// {imageUrl}, {imageUrls:[...]} or {heatmaps:[...], matrices:[...]}.
type Response struct {
	Kind     Kind
	Single   string
	List     []string
	Heatmaps []string
	Matrices []string
}

type wireResponse struct {
	ImageURL  *string  `json:"imageUrl"`
	ImageURLs []string `json:"imageUrls"`
	Heatmaps  []string `json:"heatmaps"`
	Matrices  []string `json:"matrices"`
}

// DecodeResponse reads a success body into the tagged union. A bare JSON
// string or array of strings is accepted as a single resource or a list.
func DecodeResponse(data []byte) (Response, error) {
	if t := bytes.TrimSpace(data); len(t) == 0 || bytes.Equal(t, []byte("null")) {
		return Response{}, ErrUnrecognizedResponse
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return Response{Kind: KindSingle, Single: s}, nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		return Response{Kind: KindList, List: list}, nil
	}

	var w wireResponse
	if err := json.Unmarshal(data, &w); err != nil {
		return Response{}, fmt.Errorf("decode heatmap response: %w", err)
	}
	switch {
	case w.Heatmaps != nil || w.Matrices != nil:
		return Response{Kind: KindCategorized, Heatmaps: w.Heatmaps, Matrices: w.Matrices}, nil
	case w.ImageURLs != nil:
		return Response{Kind: KindList, List: w.ImageURLs}, nil
	case w.ImageURL != nil:
		return Response{Kind: KindSingle, Single: *w.ImageURL}, nil
	}
	return Response{}, ErrUnrecognizedResponse
}

// Normalize flattens any shape into one ordered, classified list.
// Categorized responses keep their declared category; the other shapes
// are classified by resource name.
func Normalize(r Response) []models.Resource {
	var out []models.Resource
	add := func(ref string, cat models.Category) {
		if ref != "" {
			out = append(out, models.Resource{URL: ref, Category: cat})
		}
	}
	switch r.Kind {
	case KindSingle:
		add(r.Single, models.ClassifyResource(r.Single))
	case KindList:
		for _, ref := range r.List {
			add(ref, models.ClassifyResource(ref))
		}
	case KindCategorized:
		for _, ref := range r.Heatmaps {
			add(ref, models.CategoryHeatmap)
		}
		for _, ref := range r.Matrices {
			add(ref, models.CategoryResolutionMatrix)
		}
	}
	return out
}
