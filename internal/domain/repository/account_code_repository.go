package repository

import "github.com/jhoicas/stock-analyzer-api/internal/domain/entity"

// AccountCodeRepository define el puerto de lectura de rubros presupuestales.
type AccountCodeRepository interface {
	List() ([]*entity.AccountCode, error)
	GetByCode(code string) (*entity.AccountCode, error)
}
