package server

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/veripura/certscan/internal/common"
)

// Wallet addresses are checked for shape only. This gate is a stub: it does
// not verify signatures, balances, or anything on a ledger.
var reWalletAddress = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// walletGate admits requests whose X-Wallet-Address header carries a
// well-formed address on the allowlist. With an empty allowlist the gate is
// disabled and every request passes.
func walletGate(cfg common.GateConfig, logger *zap.Logger) fiber.Handler {
	allow := make(map[string]struct{}, len(cfg.WalletAllowlist))
	for _, a := range cfg.WalletAllowlist {
		allow[strings.ToLower(a)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if len(allow) == 0 {
			return c.Next()
		}
		addr := c.Get("X-Wallet-Address")
		if !reWalletAddress.MatchString(addr) {
			return fiber.NewError(fiber.StatusUnauthorized, "well-formed wallet address required")
		}
		if _, ok := allow[strings.ToLower(addr)]; !ok {
			logger.Warn("wallet not on allowlist", zap.String("address", addr))
			return fiber.NewError(fiber.StatusForbidden, "wallet not authorized")
		}
		return c.Next()
	}
}
