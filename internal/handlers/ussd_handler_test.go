package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"shamba-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUssdService struct {
	got  models.UssdRequest
	resp string
	err  error
}

func (f *fakeUssdService) Handle(_ context.Context, req models.UssdRequest) (string, error) {
	f.got = req
	return f.resp, f.err
}

func ussdForm(text string) string {
	return url.Values{
		"sessionId":   {"ATUid_1"},
		"serviceCode": {"*384*1300#"},
		"phoneNumber": {"+254712345678"},
		"text":        {text},
	}.Encode()
}

func TestUssdHandler_PlainTextResponse(t *testing.T) {
	svc := &fakeUssdService{resp: "CON Select Crop:\n1. Maize"}
	r := newRouter(NewUssdHandler(svc))

	w := performRequest(r, http.MethodPost, "/ussd", "application/x-www-form-urlencoded", ussdForm("1"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CON Select Crop:\n1. Maize", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "1", svc.got.Text)
	assert.Equal(t, "+254712345678", svc.got.PhoneNumber)
	assert.Equal(t, "ATUid_1", svc.got.SessionID)
}

func TestUssdHandler_SystemError(t *testing.T) {
	r := newRouter(NewUssdHandler(&fakeUssdService{err: errors.New("db down")}))

	w := performRequest(r, http.MethodPost, "/ussd", "application/x-www-form-urlencoded", ussdForm("3"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "END System Error", w.Body.String())
}
