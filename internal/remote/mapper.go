package remote

import (
	"time"

	"github.com/afariz/mediashelf/internal/domain"
)

func mapItems(kind domain.Kind, dtos []itemDTO) []domain.Item {
	items := make([]domain.Item, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, mapItem(kind, dto))
	}
	return items
}

func mapItem(kind domain.Kind, dto itemDTO) domain.Item {
	item := domain.Item{
		ID:    dto.ID.String(),
		Kind:  kind,
		Title: dto.Title,
		Genre: dto.Genre,
	}
	if dto.Rating != nil {
		item.Rating = *dto.Rating
	}
	if dto.ReleaseYear != nil {
		item.ReleaseYear = *dto.ReleaseYear
	}
	if dto.Description != nil {
		item.Description = *dto.Description
	}
	if dto.ImageURL != nil {
		item.ImageURL = *dto.ImageURL
	}

	switch kind {
	case domain.KindMovie:
		if dto.Director != nil {
			item.Creator = *dto.Director
		}
		if dto.Duration != nil {
			item.DurationMin = *dto.Duration
		}
	case domain.KindBook:
		if dto.Author != nil {
			item.Creator = *dto.Author
		}
		if dto.Pages != nil {
			item.Pages = *dto.Pages
		}
	}

	return item
}

func fieldsToDTO(kind domain.Kind, fields domain.ItemFields) itemPayload {
	p := itemPayload{
		Title: fields.Title,
		Genre: fields.Genre,
	}
	if fields.Rating > 0 {
		p.Rating = &fields.Rating
	}
	if fields.ReleaseYear > 0 {
		p.ReleaseYear = &fields.ReleaseYear
	}
	if fields.Description != "" {
		p.Description = &fields.Description
	}
	if fields.ImageURL != "" {
		p.ImageURL = &fields.ImageURL
	}

	switch kind {
	case domain.KindMovie:
		p.Director = &fields.Creator
		if fields.DurationMin > 0 {
			p.Duration = &fields.DurationMin
		}
	case domain.KindBook:
		p.Author = &fields.Creator
		if fields.Pages > 0 {
			p.Pages = &fields.Pages
		}
	}

	return p
}

func mapReviews(dtos []reviewDTO) []domain.Review {
	reviews := make([]domain.Review, 0, len(dtos))
	for _, dto := range dtos {
		reviews = append(reviews, mapReview(dto))
	}
	return reviews
}

func mapReview(dto reviewDTO) domain.Review {
	review := domain.Review{
		ID:     dto.ID.String(),
		ItemID: dto.ItemID.String(),
		Author: dto.Author,
		Rating: dto.Rating,
		Text:   dto.Text,
	}
	if t, err := time.Parse(time.RFC3339, dto.CreatedAt); err == nil {
		review.CreatedAt = t
	}
	return review
}
