package badge

type CheckResponse struct {
	Awarded []Badge `json:"awarded"`
	Message string  `json:"message"`
}
