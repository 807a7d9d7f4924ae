package property

type CreatePropertyRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	City          string  `json:"city" binding:"required"`
	Address       string  `json:"address"`
	PropertyType  string  `json:"property_type" binding:"required"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	AreaSqm       float64 `json:"area_sqm"`
	RentPrice     float64 `json:"rent_price" binding:"required,gt=0"`
	DepositAmount float64 `json:"deposit_amount"`
	CoverImage    string  `json:"cover_image"`

	BakongAccount      string `json:"bakong_account"`
	BakongMerchantName string `json:"bakong_merchant_name"`
	BakongPhone        string `json:"bakong_phone"`
}

type UpdatePropertyRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	City          *string  `json:"city"`
	Address       *string  `json:"address"`
	PropertyType  *string  `json:"property_type"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	AreaSqm       *float64 `json:"area_sqm"`
	RentPrice     *float64 `json:"rent_price"`
	DepositAmount *float64 `json:"deposit_amount"`
	CoverImage    *string  `json:"cover_image"`

	BakongAccount      *string `json:"bakong_account"`
	BakongMerchantName *string `json:"bakong_merchant_name"`
	BakongPhone        *string `json:"bakong_phone"`
}
