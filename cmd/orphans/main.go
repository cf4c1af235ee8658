// Command orphans lists sales that were stored but never got a Pix payment,
// usually because the gateway call failed after the insert.
package main

import (
	"apostila-pix-store/internal/client"
	"apostila-pix-store/internal/config"
	"apostila-pix-store/internal/logging"
	"apostila-pix-store/internal/repository"
	"apostila-pix-store/internal/service"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type orphanRow struct {
	SaleID    string    `json:"saleId"`
	Email     string    `json:"email"`
	Whatsapp  string    `json:"whatsapp,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List pending sales that never received a payment id",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg := &config.Config{}
			if err := env.Parse(cfg); err != nil {
				return fmt.Errorf("parse config: %w", err)
			}

			logger, err := logging.New(&cfg.Log, &cfg.Environment)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := client.InitDBClient(&cfg.Database)
			if err != nil {
				return err
			}

			product, err := service.NewProduct(&cfg.Product)
			if err != nil {
				return err
			}

			saleService := service.NewSaleService(
				client.NewMercadoPagoClient(&cfg.MercadoPago),
				client.NewResendMailer(&cfg.Email),
				cfg.PublicURL,
				product,
				repository.NewSaleRepository(db),
				nil,
				logger,
			)

			sales, err := saleService.ListOrphans(cmd.Context(), olderThan)
			if err != nil {
				return err
			}

			rows := make([]orphanRow, len(sales))
			for i, s := range sales {
				rows[i] = orphanRow{SaleID: s.ID, Email: s.Email, CreatedAt: s.CreatedAt}
				if s.Whatsapp != nil {
					rows[i].Whatsapp = *s.Whatsapp
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", time.Hour, "only list sales created at least this long ago")
	return cmd
}
