package usecase

import "github.com/ymoumine/RentalAI/internal/listing/domain"

// DefaultPageSize is the number of listings shown per page.
const DefaultPageSize = 4

// Paginate returns the requested window of listings. Out-of-range pages are
// clamped to the nearest valid page; a non-positive size uses DefaultPageSize.
func Paginate(listings []domain.Listing, page, size int) domain.Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(listings)
	totalPages := (total + size - 1) / size

	lastPage := max(totalPages, 1)
	page = min(max(page, 1), lastPage)

	start := min((page-1)*size, total)
	end := min(start+size, total)

	items := make([]domain.Listing, end-start)
	copy(items, listings[start:end])

	return domain.Page{
		Number:     page,
		Size:       size,
		TotalPages: totalPages,
		Total:      total,
		Start:      start,
		End:        end,
		Items:      items,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}
