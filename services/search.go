package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/shopspring/decimal"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	fuzzyMinWordLen = 4
)

type SearchParams struct {
	Text          string           `json:"text,omitempty"`
	Type          string           `json:"type,omitempty"`
	MinPrice      *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice      *decimal.Decimal `json:"maxPrice,omitempty"`
	Amenities     []string         `json:"amenities,omitempty"`
	MinOccupancy  *int             `json:"minOccupancy,omitempty"`
	MaxOccupancy  *int             `json:"maxOccupancy,omitempty"`
	AvailableOnly bool             `json:"availableOnly,omitempty"`
	CheckIn       *time.Time       `json:"checkIn,omitempty"`
	CheckOut      *time.Time       `json:"checkOut,omitempty"`
	SortBy        string           `json:"sortBy,omitempty"`
	SortOrder     string           `json:"sortOrder,omitempty"`
	Page          int              `json:"page"`
	PageSize      int              `json:"pageSize"`
}

type SearchResult struct {
	Data       []models.Room `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
	Suggestion string        `json:"suggestion,omitempty"`
}

func (p SearchParams) isPlainListing() bool {
	return p.Text == "" && p.Type == "" && p.MinPrice == nil && p.MaxPrice == nil &&
		len(p.Amenities) == 0 && p.MinOccupancy == nil && p.MaxOccupancy == nil &&
		!p.AvailableOnly && p.CheckIn == nil && p.CheckOut == nil
}

func (p *SearchParams) normalize() error {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	switch p.SortBy {
	case "", "price", "rating", "number", "occupancy":
	default:
		return apperrors.Validation("sortBy must be one of price, rating, number, occupancy")
	}
	switch strings.ToLower(p.SortOrder) {
	case "", "asc":
		p.SortOrder = "asc"
	case "desc":
		p.SortOrder = "desc"
	default:
		return apperrors.Validation("sortOrder must be asc or desc")
	}
	if p.MinPrice != nil && p.MaxPrice != nil && p.MinPrice.GreaterThan(*p.MaxPrice) {
		return apperrors.Validation("minPrice must not exceed maxPrice")
	}
	if p.MinOccupancy != nil && p.MaxOccupancy != nil && *p.MinOccupancy > *p.MaxOccupancy {
		return apperrors.Validation("minOccupancy must not exceed maxOccupancy")
	}
	if (p.CheckIn == nil) != (p.CheckOut == nil) {
		return apperrors.Validation("checkIn and checkOut must be given together")
	}
	p.CheckIn, p.CheckOut = timeOrNil(p.CheckIn), timeOrNil(p.CheckOut)
	if p.CheckIn != nil && !p.CheckOut.After(*p.CheckIn) {
		return apperrors.Validation("checkOut must be after checkIn")
	}
	p.Amenities = normalizeAmenities(p.Amenities)
	return nil
}

// Search filters, sorts and pages the rooms of the caller's tenant.
func (s *CatalogService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := params.normalize(); err != nil {
		return nil, err
	}

	all, err := s.rooms.List(ctx, repository.RoomFilter{TenantID: tenantID})
	if err != nil {
		return nil, err
	}

	var free map[string]bool
	if params.CheckIn != nil {
		rooms, err := s.availability.CheckAvailability(ctx, tenantID, *params.CheckIn, *params.CheckOut, params.Type)
		if err != nil {
			return nil, err
		}
		free = make(map[string]bool, len(rooms))
		for _, r := range rooms {
			free[r.ID] = true
		}
	}

	query := normalizeInput(params.Text)
	matched := make([]models.Room, 0, len(all))
	for _, room := range all {
		if free != nil && !free[room.ID] {
			continue
		}
		if !params.matches(&room) {
			continue
		}
		if query != "" && !matchesText(&room, query) {
			continue
		}
		matched = append(matched, room)
	}

	sortRooms(matched, params.SortBy, params.SortOrder == "desc")

	total := len(matched)
	result := &SearchResult{
		Data:       []models.Room{},
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: (total + params.PageSize - 1) / params.PageSize,
	}
	start := (params.Page - 1) * params.PageSize
	if start < total {
		end := start + params.PageSize
		if end > total {
			end = total
		}
		result.Data = matched[start:end]
	}
	if total == 0 && query != "" {
		result.Suggestion = suggest(all, query)
	}
	return result, nil
}

func (p SearchParams) matches(room *models.Room) bool {
	if p.Type != "" && room.Type != p.Type {
		return false
	}
	if p.AvailableOnly && !room.IsAvailable {
		return false
	}
	if p.MinPrice != nil && room.PricePerNight.LessThan(*p.MinPrice) {
		return false
	}
	if p.MaxPrice != nil && room.PricePerNight.GreaterThan(*p.MaxPrice) {
		return false
	}
	if p.MinOccupancy != nil && room.MaxOccupancy < *p.MinOccupancy {
		return false
	}
	if p.MaxOccupancy != nil && room.MaxOccupancy > *p.MaxOccupancy {
		return false
	}
	return room.HasAmenities(p.Amenities)
}

func sortRooms(rooms []models.Room, by string, desc bool) {
	less := func(a, b *models.Room) int {
		switch by {
		case "price":
			return a.PricePerNight.Cmp(b.PricePerNight)
		case "rating":
			switch {
			case a.RatingAverage < b.RatingAverage:
				return -1
			case a.RatingAverage > b.RatingAverage:
				return 1
			}
			return 0
		case "occupancy":
			return a.MaxOccupancy - b.MaxOccupancy
		default:
			return strings.Compare(a.Number, b.Number)
		}
	}
	sort.SliceStable(rooms, func(i, j int) bool {
		c := less(&rooms[i], &rooms[j])
		if c == 0 {
			return rooms[i].Number < rooms[j].Number
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// normalizeInput folds accents and case.
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func roomTerms(room *models.Room) []string {
	terms := []string{normalizeInput(room.Number), normalizeInput(room.Type)}
	for _, a := range room.Amenities {
		terms = append(terms, normalizeInput(a))
	}
	return terms
}

// matchesText accepts a room when the query is a substring of one of its
// terms, or when every query word matches some term word exactly, as a
// substring, or within one edit for words of at least four letters.
func matchesText(room *models.Room, query string) bool {
	terms := roomTerms(room)
	for _, t := range terms {
		if strings.Contains(t, query) {
			return true
		}
	}

	var words []string
	for _, t := range terms {
		words = append(words, strings.Fields(t)...)
	}
	for _, q := range strings.Fields(query) {
		if !wordMatches(q, words) {
			return false
		}
	}
	return true
}

func wordMatches(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(w, q) {
			return true
		}
		if len([]rune(q)) >= fuzzyMinWordLen && len([]rune(w)) >= fuzzyMinWordLen &&
			levenshtein.DistanceForStrings([]rune(q), []rune(w), levenshtein.DefaultOptionsWithSub) <= 1 {
			return true
		}
	}
	return false
}

// suggest proposes the closest known term for a query that found nothing.
func suggest(rooms []models.Room, query string) string {
	unique := make(map[string]bool)
	for i := range rooms {
		for _, t := range roomTerms(&rooms[i]) {
			if t != "" {
				unique[t] = true
			}
		}
	}
	if len(unique) == 0 {
		return ""
	}
	keywords := make([]string, 0, len(unique))
	for k := range unique {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	closest := closestmatch.New(keywords, []int{2, 3}).Closest(query)
	if closest == query {
		return ""
	}
	return closest
}
