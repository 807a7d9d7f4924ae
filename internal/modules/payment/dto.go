package payment

type GenerateKHQRRequest struct {
	PropertyID int64   `json:"property" binding:"required"`
	BookingID  int64   `json:"booking_id"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   string  `json:"currency" binding:"required,oneof=KHR USD"`
}

type GenerateKHQRResponse struct {
	QRImage      string  `json:"qr_image"`
	MD5Hash      string  `json:"md5_hash"`
	MerchantName string  `json:"merchant_name"`
	BillNumber   string  `json:"bill_number"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

type CheckStatusRequest struct {
	MD5Hash string `json:"md5_hash" binding:"required"`
}

type CheckStatusResponse struct {
	Status   string `json:"status"`
	Attempts int    `json:"attempts"`
}
