package models

// BusinessResponse is the JSON envelope the API server returns for listings.
type BusinessResponse struct {
	Data       []BusinessPayload `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

type BusinessPayload struct {
	ID             int64    `json:"id"`
	Category       string   `json:"category"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Website        string   `json:"website"`
	PhoneNumber    string   `json:"phone_number"`
	ReviewsCount   int      `json:"reviews_count"`
	ReviewsAverage float64  `json:"reviews_average"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

type Pagination struct {
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

// Payload converts a stored business to its API shape.
func (b Business) Payload() BusinessPayload {
	return BusinessPayload{
		ID:             b.ID,
		Category:       b.Category,
		Name:           b.Name,
		Address:        b.Address,
		Website:        b.Website,
		PhoneNumber:    b.PhoneNumber,
		ReviewsCount:   b.ReviewsCount,
		ReviewsAverage: b.ReviewsAverage,
		Latitude:       b.Latitude,
		Longitude:      b.Longitude,
	}
}
