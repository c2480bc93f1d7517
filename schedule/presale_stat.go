package schedule

import (
	"launchcontrol/internal/engine"
	"launchcontrol/internal/models"
	dbconfig "launchcontrol/pkg/config"

	"github.com/gagliardetto/solana-go"
	logger "github.com/sirupsen/logrus"
)

// RecordPresaleSnapshots walks the indexed presales and writes one stat row
// per active sale. Sales whose records have reached a terminal state get
// their index row deactivated so the next run skips them.
func RecordPresaleSnapshots(eng *engine.Engine) error {
	logger.Info("> Recording presale snapshots")

	var rows []models.PresaleIndex
	if err := dbconfig.DB.Where("is_active = ?", true).Find(&rows).Error; err != nil {
		logger.Errorf("> Failed to query presale index: %v", err)
		return err
	}
	logger.Infof("> Found %d active presales", len(rows))

	for _, row := range rows {
		addr, err := solana.PublicKeyFromBase58(row.PresaleAddress)
		if err != nil {
			logger.Errorf("> Bad presale address %q: %v", row.PresaleAddress, err)
			continue
		}
		view, err := eng.Presale(addr)
		if err != nil {
			logger.Errorf("> Failed to load presale %s: %v", row.PresaleAddress, err)
			continue
		}
		rec := view.Record

		snapshot := models.PresaleSnapshot{
			PresaleAddress:  row.PresaleAddress,
			Token:           rec.Token.String(),
			Identifier:      rec.Identifier(),
			TotalRaised:     rec.TotalRaised,
			TotalTokensSold: rec.TotalTokensSold,
			TotalRefAmount:  rec.TotalRefAmount,
			TotalRefCount:   rec.TotalRefCount,
			PresaleEnded:    rec.PresaleEnded,
			PresaleCanceled: rec.PresaleCanceled,
			PresaleRefund:   rec.PresaleRefund,
			VaultLamports:   view.VaultLamports,
			VaultTokens:     view.VaultTokens,
		}
		if err := dbconfig.DB.Create(&snapshot).Error; err != nil {
			logger.Errorf("> Failed to write snapshot for %s: %v", row.PresaleAddress, err)
			continue
		}

		if rec.PresaleEnded || rec.PresaleCanceled {
			err := dbconfig.DB.Model(&models.PresaleIndex{}).
				Where("id = ?", row.ID).
				Update("is_active", false).Error
			if err != nil {
				logger.Errorf("> Failed to deactivate presale %s: %v", row.PresaleAddress, err)
			}
		}
	}

	logger.Info("> Presale snapshots recorded")
	return nil
}
