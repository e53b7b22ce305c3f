package domain

import listingdomain "github.com/ymoumine/RentalAI/internal/listing/domain"

// Charts holds the image URLs of the pre-rendered charts. Empty means unavailable.
type Charts struct {
	RentByMonthURL       string `json:"rentByMonthUrl"`
	RentDistributionURL  string `json:"rentDistributionUrl"`
	FeatureImportanceURL string `json:"featureImportanceUrl"`
}

type Dashboard struct {
	Stats listingdomain.Stats `json:"stats"`
	Charts
}
