package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWhatsAppCloudSender(t *testing.T) {
	tests := []struct {
		name    string
		cfg     WhatsAppConfig
		wantErr bool
	}{
		{name: "valid credentials", cfg: WhatsAppConfig{AccessToken: "token", PhoneNumberID: "123"}},
		{name: "missing access token", cfg: WhatsAppConfig{PhoneNumberID: "123"}, wantErr: true},
		{name: "missing phone number id", cfg: WhatsAppConfig{AccessToken: "token"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewWhatsAppCloudSender(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, sender)
		})
	}
}

func TestWhatsAppCloudSender_SendText(t *testing.T) {
	var received whatsAppTextMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/123/messages", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"messaging_product":"whatsapp","messages":[{"id":"wamid.1"}]}`))
	}))
	defer server.Close()

	sender, err := NewWhatsAppCloudSender(WhatsAppConfig{AccessToken: "token", PhoneNumberID: "123", BaseURL: server.URL})
	require.NoError(t, err)

	id, err := sender.SendText(context.Background(), "2348012345678", "Your booking is confirmed")
	require.NoError(t, err)
	assert.Equal(t, "wamid.1", id)
	assert.Equal(t, "2348012345678", received.To)
	assert.Equal(t, "Your booking is confirmed", received.Text.Body)
}

func TestWhatsAppCloudSender_SendText_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"invalid recipient"}}`))
	}))
	defer server.Close()

	sender, _ := NewWhatsAppCloudSender(WhatsAppConfig{AccessToken: "token", PhoneNumberID: "123", BaseURL: server.URL})
	_, err := sender.SendText(context.Background(), "bad", "hi")
	assert.ErrorContains(t, err, "status 400")
}
