package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
)

type normalizedOrder struct {
	OrderDate string `json:"orderDate,omitempty"`
	OrderDesc string `json:"orderDesc"`
	OrderFee  string `json:"orderFee"`
	CartID    int64  `json:"cartId"`
}

// FingerprintOrder hashes the order creation payload. Supplied identities are
// ignored and the nested and flat cart references hash alike.
func FingerprintOrder(dto types.OrderDTO) (string, error) {
	normalized := normalizedOrder{
		OrderDesc: dto.OrderDesc,
		OrderFee:  dto.OrderFee.StringFixed(2),
		CartID:    dto.CartID,
	}
	if dto.Cart != nil && dto.Cart.CartID != 0 {
		normalized.CartID = dto.Cart.CartID
	}
	if !dto.OrderDate.IsZero() {
		normalized.OrderDate = dto.OrderDate.UTC().Format(time.RFC3339Nano)
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
