package domain

type RecommendationType string

const (
	RecommendMostBooked      RecommendationType = "most_booked"
	RecommendHighestRated    RecommendationType = "highest_rated"
	RecommendUserSearchBased RecommendationType = "user_search_based"
	RecommendAveragePrice    RecommendationType = "average_price"
	RecommendFallback        RecommendationType = "recommended"
)

type recommendationMeta struct {
	Label   string
	Message string
}

var recommendationMetas = map[RecommendationType]recommendationMeta{
	RecommendMostBooked:      {Label: "POPULAR", Message: "Most booked properties"},
	RecommendHighestRated:    {Label: "TOP RATED", Message: "Highest rated properties"},
	RecommendUserSearchBased: {Label: "FOR YOU", Message: "Based on your recent searches"},
	RecommendAveragePrice:    {Label: "BEST VALUE", Message: "Around the average market price"},
	RecommendFallback:        {Label: "RECOMMENDED", Message: "Recommended properties"},
}

// RecommendationItem is a property annotated with the source it was
// recommended by. A property keeps the tag of the first source it
// appeared under.
type RecommendationItem struct {
	Property           Property           `json:"property"`
	RecommendationType RecommendationType `json:"recommendation_type"`
	Label              string             `json:"label"`
	Message            string             `json:"message"`
}

// NewRecommendationItem tags a property with its source metadata.
func NewRecommendationItem(p Property, t RecommendationType) RecommendationItem {
	m, ok := recommendationMetas[t]
	if !ok {
		m = recommendationMetas[RecommendFallback]
	}
	return RecommendationItem{Property: p, RecommendationType: t, Label: m.Label, Message: m.Message}
}
