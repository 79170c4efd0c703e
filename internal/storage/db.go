package storage

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/NgigiN/ledger/internal/ledger"
)

const ledgerOrder = "date asc, id asc"

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Transaction{}, &InterestRule{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) InsertTransaction(ctx context.Context, txn *ledger.Transaction) error {
	if err := d.db.WithContext(ctx).Create(fromLedgerTransaction(txn)).Error; err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (d *Database) TransactionsByAccount(ctx context.Context, account string) ([]ledger.Transaction, error) {
	var rows []Transaction
	if err := d.db.WithContext(ctx).Where("account = ?", account).Order(ledgerOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for account %s: %w", account, err)
	}
	return toLedgerTransactions(rows), nil
}

func (d *Database) TransactionsBetween(ctx context.Context, account, from, to string) ([]ledger.Transaction, error) {
	var rows []Transaction
	err := d.db.WithContext(ctx).
		Where("account = ? AND date >= ? AND date <= ?", account, from, to).
		Order(ledgerOrder).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for account %s: %w", account, err)
	}
	return toLedgerTransactions(rows), nil
}

func (d *Database) CountByDate(ctx context.Context, date string) (int, error) {
	var n int64
	if err := d.db.WithContext(ctx).Model(&Transaction{}).Where("date = ?", date).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return int(n), nil
}

func (d *Database) AllTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	var rows []Transaction
	if err := d.db.WithContext(ctx).Order(ledgerOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return toLedgerTransactions(rows), nil
}

// Accounts lists every account with at least one transaction.
func (d *Database) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := d.db.WithContext(ctx).Model(&Transaction{}).Distinct().Order("account").Pluck("account", &accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (d *Database) Rules(ctx context.Context) ([]ledger.InterestRule, error) {
	var rows []InterestRule
	if err := d.db.WithContext(ctx).Order(ledgerOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get interest rules: %w", err)
	}
	out := make([]ledger.InterestRule, len(rows))
	for i, r := range rows {
		out[i] = r.toLedger()
	}
	return out, nil
}

// UpsertRule replaces the rule on rule.Date in a single statement.
func (d *Database) UpsertRule(ctx context.Context, rule ledger.InterestRule) error {
	row := InterestRule{Date: rule.Date, RuleID: rule.RuleID, Rate: rule.Rate}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"rule_id", "rate", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save interest rule: %w", err)
	}
	return nil
}
