package models

// UssdRequest is the form posted by the USSD gateway on every menu step
type UssdRequest struct {
	SessionID   string `form:"sessionId"`
	ServiceCode string `form:"serviceCode"`
	PhoneNumber string `form:"phoneNumber"`
	NetworkCode string `form:"networkCode"`
	Text        string `form:"text"`
}
