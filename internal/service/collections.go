package service

import (
	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/format"
)

type collectionNode struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Handle    string `json:"handle"`
	UpdatedAt string `json:"updatedAt"`
	SortOrder string `json:"sortOrder"`
	Image     *struct {
		URL     string  `json:"url"`
		AltText *string `json:"altText"`
	} `json:"image"`
}

func normalizeCollection(n collectionNode) (domain.CollectionRow, error) {
	row, err := normalizeCollectionReport(n)
	if err != nil {
		return domain.CollectionRow{}, err
	}
	if n.Image != nil {
		row.ImageURL = n.Image.URL
		if n.Image.AltText != nil {
			row.ImageAltText = *n.Image.AltText
		}
	}
	return row, nil
}

// normalizeCollectionReport keeps the summary fields only
func normalizeCollectionReport(n collectionNode) (domain.CollectionRow, error) {
	return domain.CollectionRow{
		ID:        n.ID,
		Title:     n.Title,
		Handle:    n.Handle,
		UpdatedAt: n.UpdatedAt,
		SortOrder: format.TitleCase(n.SortOrder),
	}, nil
}
