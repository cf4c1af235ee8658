package client

import (
	"apostila-pix-store/internal/config"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentAttachment struct {
	Filename string          `json:"filename"`
	Content  json.RawMessage `json:"content"`
}

type sentEmail struct {
	From        string           `json:"from"`
	To          []string         `json:"to"`
	Subject     string           `json:"subject"`
	HTML        string           `json:"html"`
	Attachments []sentAttachment `json:"attachments"`
}

// attachmentBytes accepts the content either as a JSON byte array or as a string.
func attachmentBytes(t *testing.T, raw json.RawMessage) []byte {
	t.Helper()
	if len(raw) > 0 && raw[0] == '[' {
		var ints []int
		require.NoError(t, json.Unmarshal(raw, &ints))
		b := make([]byte, len(ints))
		for i, v := range ints {
			b[i] = byte(v)
		}
		return b
	}
	var s string
	require.NoError(t, json.Unmarshal(raw, &s))
	return []byte(s)
}

func TestResendMailer_Send(t *testing.T) {
	var got sentEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email_1"}`))
	}))
	t.Cleanup(srv.Close)

	m, ok := NewResendMailer(&config.Email{
		APIKey:   "re_test",
		From:     "loja@example.com",
		FromName: "Projeto NST TREINAMENTO",
	}).(*resendMailerImpl)
	require.True(t, ok)

	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	m.client.BaseURL = base

	pdf := []byte{'%', 'P', 'D', 'F', 0xff, 0x00, 0x80}
	err = m.Send(context.Background(), &Email{
		To:      "a@x.com",
		Subject: "Sua Apostila chegou!",
		HTML:    "<h1>Olá, Ana!</h1>",
		Attachments: []Attachment{{
			Filename: "Apostila - Luto Mal Resolvido.pdf",
			Content:  pdf,
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Projeto NST TREINAMENTO <loja@example.com>", got.From)
	assert.Equal(t, []string{"a@x.com"}, got.To)
	assert.Equal(t, "Sua Apostila chegou!", got.Subject)
	assert.Equal(t, "<h1>Olá, Ana!</h1>", got.HTML)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "Apostila - Luto Mal Resolvido.pdf", got.Attachments[0].Filename)
	assert.True(t, bytes.Equal(pdf, attachmentBytes(t, got.Attachments[0].Content)))
}

func TestResendMailer_SendRelayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"invalid from"}`))
	}))
	t.Cleanup(srv.Close)

	m := NewResendMailer(&config.Email{APIKey: "re_test", From: "loja@example.com"}).(*resendMailerImpl)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	m.client.BaseURL = base

	assert.Error(t, m.Send(context.Background(), &Email{To: "a@x.com", Subject: "s", HTML: "h"}))
}

func TestResendMailer_NotConfigured(t *testing.T) {
	m := NewResendMailer(&config.Email{From: "shop@example.com"})
	assert.False(t, m.Configured())
	assert.Error(t, m.Send(context.Background(), &Email{To: "a@x.com"}))

	m = NewResendMailer(&config.Email{APIKey: "re_test"})
	assert.False(t, m.Configured())

	m = NewResendMailer(&config.Email{APIKey: "re_test", From: "shop@example.com"})
	assert.True(t, m.Configured())
}
