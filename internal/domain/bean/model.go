package bean

// Bean is a registered batch or origin of coffee.
type Bean struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Shop        string `json:"shop,omitempty"`
	Variety     string `json:"variety,omitempty"`
	RoastDate   string `json:"roast_date,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreatedDate string `json:"created_date,omitempty"`
}
