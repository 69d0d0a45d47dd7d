package models

// ListingSummary is a single search-result entry. It is produced during the
// search phase and never mutated after being appended to a result set.
type ListingSummary struct {
	ListingID          string  `json:"listing_id"`
	ListingURL         string  `json:"listing_url"`
	Location           string  `json:"location"`
	Title              string  `json:"title,omitempty"`
	Description        string  `json:"description,omitempty"`
	Bedrooms           int     `json:"bedrooms,omitempty"`
	PricePerNight      float64 `json:"price_per_night,omitempty"`
	TotalPrice         float64 `json:"total_price,omitempty"`
	StayLengthNights   int     `json:"stay_length_nights,omitempty"`
	RawPriceText       string  `json:"raw_price_text,omitempty"`
	NumberOfReviews    int     `json:"number_of_reviews,omitempty"`
	OverallReviewScore float64 `json:"overall_review_score,omitempty"`
}

// DetailedListing is the full per-listing extraction result. Every field is
// best-effort: a failed sub-extraction leaves its zero value in place. Only a
// total navigation failure produces an error-only record (Error set, the rest
// empty).
type DetailedListing struct {
	ListingSummary

	Images          []string          `json:"images,omitempty"`
	HostProfileID   string            `json:"host_profile_id,omitempty"`
	HostProfile     *HostProfile      `json:"host_profile,omitempty"`
	CoHosts         []CoHost          `json:"co_hosts,omitempty"`
	MaxGuests       int               `json:"max_guests,omitempty"`
	Bathrooms       float64           `json:"bathrooms,omitempty"`
	IsGuestFavorite bool              `json:"is_guest_favorite"`
	IsSuperhost     bool              `json:"is_superhost"`
	LocationInfo    LocationInfo      `json:"location_info"`
	Pricing         PricingInfo       `json:"pricing"`
	ReviewScore     ReviewScore       `json:"review_score"`
	Amenities       []Amenity         `json:"amenities,omitempty"`
	Reviews         ReviewsByCategory `json:"reviews,omitempty"`
	HouseRules      HouseRules        `json:"house_rules"`

	// Error is set when the detail job failed outright (navigation never
	// succeeded). Partial records with some fields missing leave it empty.
	Error string `json:"error,omitempty"`
}

// CoHost is a secondary account responsible for a listing.
type CoHost struct {
	Name      string `json:"name,omitempty"`
	ProfileID string `json:"profile_id"`
}

// HostProfile holds everything scraped from the host's public profile page.
type HostProfile struct {
	Name               string        `json:"name,omitempty"`
	IsSuperhost        bool          `json:"is_superhost"`
	IsIdentityVerified bool          `json:"is_identity_verified"`
	ReviewsCount       int           `json:"reviews_count"`
	Rating             float64       `json:"rating,omitempty"`
	YearsHosting       int           `json:"years_hosting"`
	Work               string        `json:"work,omitempty"`
	Pets               string        `json:"pets,omitempty"`
	Location           string        `json:"location,omitempty"`
	Languages          []string      `json:"languages,omitempty"`
	About              string        `json:"about,omitempty"`
	ProfileImageURL    string        `json:"profile_image_url,omitempty"`
	IsCompany          bool          `json:"is_company"`
	CompanyName        string        `json:"company_name,omitempty"`
	Listings           []HostListing `json:"listings,omitempty"`
}

// HostListing is one entry from the host profile's listing-card grid.
type HostListing struct {
	Title        string  `json:"title"`
	Subtitle     string  `json:"subtitle,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	ReviewsCount int     `json:"reviews_count,omitempty"`
	URL          string  `json:"url,omitempty"`
}

// LocationInfo is the parsed "where you'll be" section plus map coordinates.
type LocationInfo struct {
	Address     string      `json:"address,omitempty"`
	City        string      `json:"city,omitempty"`
	State       string      `json:"state,omitempty"`
	Country     string      `json:"country,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// Coordinates are the map-pin coordinates. Zero values mean "not found".
type Coordinates struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// PricingInfo is derived from the calendar date-pair selection, or from the
// booking sidebar when the calendar path fails.
type PricingInfo struct {
	PricePerNight       float64 `json:"price_per_night,omitempty"`
	Currency            string  `json:"currency,omitempty"`
	TotalFor3Nights     float64 `json:"total_for_3_nights,omitempty"`
	PriceBeforeDiscount float64 `json:"price_before_discount,omitempty"`
	DiscountPercentage  float64 `json:"discount_percentage,omitempty"`
}

// ReviewScore is the overall rating plus optional per-category breakdown.
type ReviewScore struct {
	OverallRating   float64         `json:"overall_rating,omitempty"`
	ReviewsCount    int             `json:"reviews_count,omitempty"`
	CategoryRatings CategoryRatings `json:"category_ratings"`
}

// CategoryRatings are the sub-scores making up an overall rating.
type CategoryRatings struct {
	Cleanliness   float64 `json:"cleanliness,omitempty"`
	Accuracy      float64 `json:"accuracy,omitempty"`
	CheckIn       float64 `json:"check_in,omitempty"`
	Communication float64 `json:"communication,omitempty"`
	Location      float64 `json:"location,omitempty"`
	Value         float64 `json:"value,omitempty"`
}

// SortOrder is a review-modal sort key.
type SortOrder string

const (
	SortMostRelevant SortOrder = "mostRelevant"
	SortMostRecent   SortOrder = "mostRecent"
	SortHighestRated SortOrder = "highestRated"
	SortLowestRated  SortOrder = "lowestRated"
)

// SortOrders is the harvest order. The harvester walks it sequentially
// because all categories share one page.
var SortOrders = []SortOrder{SortMostRelevant, SortMostRecent, SortHighestRated, SortLowestRated}

// ReviewsByCategory maps a sort key to its ordered, per-category-deduplicated
// review list. The same review may appear under multiple keys.
type ReviewsByCategory map[SortOrder][]Review

// Review is one harvested review record.
type Review struct {
	ReviewID string        `json:"review_id"`
	Name     string        `json:"name"`
	Text     string        `json:"text,omitempty"`
	Score    int           `json:"score"`
	Details  ReviewDetails `json:"review_details"`
}

// ReviewDetails is the reviewer metadata line under a review.
type ReviewDetails struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Date    string `json:"date,omitempty"`
}

// Amenity is one amenities-modal entry. Description is only present when the
// richer id-prefixed schema was available.
type Amenity struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// HouseRules is the parsed house-rules view.
type HouseRules struct {
	CheckIn                  string   `json:"check_in,omitempty"`
	CheckOut                 string   `json:"check_out,omitempty"`
	SelfCheckIn              bool     `json:"self_check_in"`
	MaxGuests                int      `json:"max_guests,omitempty"`
	Pets                     bool     `json:"pets"`
	QuietHours               string   `json:"quiet_hours,omitempty"`
	NoParties                bool     `json:"no_parties"`
	NoCommercialPhotography  bool     `json:"no_commercial_photography"`
	NoSmoking                bool     `json:"no_smoking"`
	AdditionalRules          string   `json:"additional_rules,omitempty"`
	BeforeYouLeave           []string `json:"before_you_leave,omitempty"`
}
