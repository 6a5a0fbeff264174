package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/features"
)

// DataContract is the machine-readable description of the published
// feature schema. Training collaborators consume it to validate inputs
// without importing this module.
type DataContract struct {
	GeneratedAt      time.Time `json:"generated_at"`
	IDColumns        []string  `json:"id_columns"`
	FeatureColumns   []string  `json:"feature_columns"`
	TargetColumn     string    `json:"target_column"`
	AnchorDateLayout string    `json:"anchor_date_layout"`
	Windows          Windows   `json:"windows_days"`
}

// Windows records the lookback lengths the features were computed with.
type Windows struct {
	Repayment int `json:"repayment"`
	Orders    int `json:"orders"`
	Friction  int `json:"friction"`
	Checkout  int `json:"checkout"`
	Merchant  int `json:"merchant"`
}

// NewDataContract builds the contract for the current schema.
func NewDataContract(generatedAt time.Time) DataContract {
	return DataContract{
		GeneratedAt:      generatedAt,
		IDColumns:        domain.IDColumns,
		FeatureColumns:   domain.FeatureColumns,
		TargetColumn:     domain.TargetColumn,
		AnchorDateLayout: domain.AnchorDateLayout,
		Windows: Windows{
			Repayment: features.RepaymentWindowDays,
			Orders:    features.OrderWindowDays,
			Friction:  features.FrictionWindowDays,
			Checkout:  features.CheckoutWindowDays,
			Merchant:  features.MerchantWindowDays,
		},
	}
}

// WriteDataContract writes the contract as indented JSON.
func WriteDataContract(path string, c DataContract) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data contract: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write data contract: %w", err)
	}

	return nil
}
