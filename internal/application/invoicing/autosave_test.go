package invoicing_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/htconfort/myconfort-facturation/internal/application/invoicing"
	"github.com/htconfort/myconfort-facturation/pkg/logger"
)

func TestAutoSaver_SauvegardePeriodiquePuisArretSurContexte(t *testing.T) {
	var calls atomic.Int32
	saver := invoicing.NewAutoSaver(10*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		saver.Run(ctx)
		close(done)
	}()

	// Laisser passer plusieurs ticks puis annuler : la boucle doit s'arrêter.
	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run ne s'est pas arrêté après l'annulation du contexte")
	}

	saved := calls.Load()
	assert.GreaterOrEqual(t, saved, int32(2), "au moins deux sauvegardes attendues en 60 ms à 10 ms d'intervalle")

	// Plus aucun tick après l'arrêt.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, saved, calls.Load(), "aucune sauvegarde ne doit survenir après l'arrêt")
}

func TestAutoSaver_EchecDeSauvegarde_LaBoucleContinue(t *testing.T) {
	var calls atomic.Int32
	saver := invoicing.NewAutoSaver(10*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return errors.New("stockage indisponible")
	}, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	saver.Run(ctx)

	assert.GreaterOrEqual(t, calls.Load(), int32(2),
		"un échec de sauvegarde ne doit pas arrêter la boucle : le tick suivant réessaie")
}
