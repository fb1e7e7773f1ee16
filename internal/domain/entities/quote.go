package entities

// QuoteLine is one row of the booking summary card
type QuoteLine struct {
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
	Amount int64  `json:"amount"`
}

// Quote is the priced summary of a draft
type Quote struct {
	Lines        []QuoteLine `json:"lines"`
	Total        int64       `json:"total"`
	TotalDisplay string      `json:"totalDisplay"`
	// PayLabel is the submit button text; CanSubmit is false while the total is 0
	PayLabel  string `json:"payLabel"`
	CanSubmit bool   `json:"canSubmit"`
}
