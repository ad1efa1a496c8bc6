package billing

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
)

// MercadoPago drives subscription preapprovals through the Mercado Pago
// API.
type MercadoPago struct {
	client preapproval.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPago{client: preapproval.NewClient(cfg)}, nil
}

func (m *MercadoPago) UpdatePreapprovalStatus(ctx context.Context, externalRef, status string) error {
	_, err := m.client.Update(ctx, externalRef, preapproval.UpdateRequest{
		Status: status,
	})
	return err
}
