// Package repository définit les ports de persistance du domaine.
// Les enregistrements sont lus et écrits en bloc (dernier écrivain gagnant),
// à l'image du stockage clé-valeur du système d'origine.
package repository

import (
	"context"

	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
)

// InvoiceRepository persistance des factures (document complet + résumé).
type InvoiceRepository interface {
	// Save insère ou remplace la facture entière sous son numéro.
	Save(ctx context.Context, inv *entity.Invoice) error
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	List(ctx context.Context) ([]*entity.InvoiceSummary, error)
	// Delete supprime par numéro (seule suppression du cycle de vie).
	Delete(ctx context.Context, number string) error
}

// ClientRepository carnet de clients.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByEmail(ctx context.Context, email string) (*entity.Client, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
}

// CatalogRepository catalogue de produits.
type CatalogRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Product, error)
}

// UserRepository comptes conseillers/admin.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
