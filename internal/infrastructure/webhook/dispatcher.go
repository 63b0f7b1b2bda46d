// Package webhook transmet le payload de facture validé à l'endpoint externe
// (n8n) en POST JSON. Trois issues d'échec distinctes sont exposées à
// l'appelant : délai dépassé, panne réseau, rejet applicatif (statut non-2xx).
// Aucune n'est silencieuse et aucune n'est réessayée automatiquement.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/htconfort/myconfort-facturation/internal/application/export"
	"github.com/htconfort/myconfort-facturation/pkg/logger"
)

// ErrTimeout l'endpoint n'a pas répondu dans le délai imparti.
var ErrTimeout = errors.New("webhook: délai d'attente dépassé")

// ErrNetwork la requête n'a pas abouti (DNS, connexion refusée...).
var ErrNetwork = errors.New("webhook: erreur réseau")

// StatusError rejet applicatif : l'endpoint a répondu hors 2xx.
type StatusError struct {
	Code int
	Body string // extrait du corps de réponse, pour le message utilisateur
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("webhook: réponse %d : %s", e.Code, e.Body)
	}
	return fmt.Sprintf("webhook: réponse %d", e.Code)
}

// Dispatcher implémente export.Dispatcher au-dessus de net/http.
type Dispatcher struct {
	url     string
	timeout time.Duration
	client  *http.Client
	log     *logger.Logger
}

var _ export.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher construit le transport. timeout <= 0 vaut 30 s.
func NewDispatcher(url string, timeout time.Duration, log *logger.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		url:     url,
		timeout: timeout,
		client:  &http.Client{},
		log:     log,
	}
}

// Dispatch envoie le payload. Succès = toute réponse 2xx.
func (d *Dispatcher) Dispatch(ctx context.Context, p *export.Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("webhook: sérialiser le payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: construire la requête: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w (%s)", ErrTimeout, d.timeout)
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		d.log.Warn().Int("status", resp.StatusCode).Str("invoice", p.InvoiceNumber).Msg("payload rejeté par l'endpoint")
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(excerpt))}
	}

	d.log.Info().Int("status", resp.StatusCode).Str("invoice", p.InvoiceNumber).Int("bytes", len(body)).Msg("payload transmis")
	return nil
}
