package domain

import "time"

// InquiryInput is a contact-form submission.
type InquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	// PropertyID is a loose reference; it is never checked against stored properties.
	PropertyID *int64 `json:"propertyId"`
}

type Inquiry struct {
	ID int64 `json:"id"`
	InquiryInput
	CreatedAt time.Time `json:"createdAt"`
}

// Clone copies the PropertyID pointer so the result shares nothing with q.
func (q Inquiry) Clone() Inquiry {
	if q.PropertyID != nil {
		id := *q.PropertyID
		q.PropertyID = &id
	}
	return q
}
