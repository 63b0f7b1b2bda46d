package invoicing

import (
	"context"
	"time"

	"github.com/htconfort/myconfort-facturation/pkg/logger"
)

// AutoSaver persiste périodiquement le brouillon en cours d'édition.
//
// La tâche appartient à l'appelant : elle démarre avec Run(ctx) et s'arrête
// quand le contexte est annulé — pas d'intervalle lancé au chargement du
// module. Elle ne fait que courir contre les éditions de l'utilisateur ;
// le dernier écrivain gagne (une seule session d'édition).
type AutoSaver struct {
	interval time.Duration
	save     func(ctx context.Context) error
	log      *logger.Logger
}

// NewAutoSaver construit la tâche. interval <= 0 vaut 60 s.
func NewAutoSaver(interval time.Duration, save func(ctx context.Context) error, log *logger.Logger) *AutoSaver {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &AutoSaver{interval: interval, save: save, log: log}
}

// Run boucle jusqu'à l'annulation du contexte. Un échec de sauvegarde est
// journalisé puis la boucle continue : le prochain tick réessaiera.
func (a *AutoSaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.save(ctx); err != nil {
				a.log.Warn().Err(err).Msg("sauvegarde automatique échouée")
			}
		}
	}
}
