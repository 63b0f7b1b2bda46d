package webhook_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htconfort/myconfort-facturation/internal/application/export"
	"github.com/htconfort/myconfort-facturation/internal/infrastructure/webhook"
	"github.com/htconfort/myconfort-facturation/pkg/logger"
)

func payload() *export.Payload {
	return &export.Payload{InvoiceNumber: "2025-0042", ClientEmail: "jane.doe@example.com"}
}

func TestDispatch_Reponse2xx_Succes(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := webhook.NewDispatcher(srv.URL, 5*time.Second, logger.Nop())
	err := d.Dispatch(context.Background(), payload())

	require.NoError(t, err)
	assert.Equal(t, "2025-0042", received["invoice_number"], "le payload doit partir en JSON snake_case")
}

func TestDispatch_RejetHTTP_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("workflow en erreur"))
	}))
	defer srv.Close()

	d := webhook.NewDispatcher(srv.URL, 5*time.Second, logger.Nop())
	err := d.Dispatch(context.Background(), payload())

	var serr *webhook.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.Code)
	assert.Contains(t, serr.Body, "workflow en erreur", "l'extrait du corps doit alimenter le message utilisateur")
}

func TestDispatch_DelaiDepasse_ErrTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	d := webhook.NewDispatcher(srv.URL, 50*time.Millisecond, logger.Nop())
	err := d.Dispatch(context.Background(), payload())

	assert.ErrorIs(t, err, webhook.ErrTimeout)
}

func TestDispatch_EndpointInjoignable_ErrNetwork(t *testing.T) {
	// Serveur fermé immédiatement : connexion refusée.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	d := webhook.NewDispatcher(url, 5*time.Second, logger.Nop())
	err := d.Dispatch(context.Background(), payload())

	assert.ErrorIs(t, err, webhook.ErrNetwork)
}
