package ports

import (
	"context"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
)

type DeploymentRepository interface {
	GetByChainID(ctx context.Context, chainID uint64) (domain.Deployment, error)
	List(ctx context.Context) ([]domain.Deployment, error)
	Save(ctx context.Context, deployment domain.Deployment) error
}
