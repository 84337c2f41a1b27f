package repository

import (
	"context"
	"fmt"

	"receiptai/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var receiptColumns = []string{
	"id", "profile_id", "file_name", "file_size", "file_url", "ocr_text",
	"status", "vendor", "receipt_date", "total_cents", "tax_cents",
	"tax_type", "created_at", "updated_at",
}

type ReceiptRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReceiptRepository(db *pgxpool.Pool, logger *zap.Logger) *ReceiptRepository {
	return &ReceiptRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ReceiptRepository) Create(ctx context.Context, rec *models.Receipt) error {
	query := squirrel.Insert("receipts").
		Columns(receiptColumns...).
		Values(rec.ID, rec.ProfileID, rec.FileName, rec.FileSize, rec.FileURL, rec.OCRText,
			rec.Status, rec.Vendor, rec.ReceiptDate, rec.TotalCents, rec.TaxCents,
			rec.TaxType, rec.CreatedAt, rec.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// UpdateParsed stores the reconstruction result: the extracted header fields
// on the receipt row and the validated line items, atomically. Existing
// items are replaced so reprocessing a receipt never duplicates them.
func (r *ReceiptRepository) UpdateParsed(ctx context.Context, rec *models.Receipt, items []*models.ReceiptItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	update := squirrel.Update("receipts").
		Set("ocr_text", rec.OCRText).
		Set("status", rec.Status).
		Set("vendor", rec.Vendor).
		Set("receipt_date", rec.ReceiptDate).
		Set("total_cents", rec.TotalCents).
		Set("tax_cents", rec.TaxCents).
		Set("tax_type", rec.TaxType).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rec.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := update.ToSql()
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	del := squirrel.Delete("receipt_items").
		Where(squirrel.Eq{"receipt_id": rec.ID}).
		PlaceholderFormat(squirrel.Dollar)
	sql, args, err = del.ToSql()
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if len(items) > 0 {
		insert := squirrel.Insert("receipt_items").
			Columns("id", "receipt_id", "position", "description", "quantity",
				"unit_price_cents", "total_cents", "created_at").
			PlaceholderFormat(squirrel.Dollar)
		for _, item := range items {
			insert = insert.Values(item.ID, item.ReceiptID, item.Position, item.Description,
				item.Quantity, item.UnitPriceCents, item.TotalCents, item.CreatedAt)
		}
		sql, args, err = insert.ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	query := squirrel.Select(receiptColumns...).
		From("receipts").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var rec models.Receipt
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rec.ID, &rec.ProfileID, &rec.FileName, &rec.FileSize, &rec.FileURL, &rec.OCRText,
		&rec.Status, &rec.Vendor, &rec.ReceiptDate, &rec.TotalCents, &rec.TaxCents,
		&rec.TaxType, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *ReceiptRepository) ListByProfileID(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*models.Receipt, error) {
	query := squirrel.Select(receiptColumns...).
		From("receipts").
		Where(squirrel.Eq{"profile_id": profileID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		var rec models.Receipt
		if err := rows.Scan(
			&rec.ID, &rec.ProfileID, &rec.FileName, &rec.FileSize, &rec.FileURL, &rec.OCRText,
			&rec.Status, &rec.Vendor, &rec.ReceiptDate, &rec.TotalCents, &rec.TaxCents,
			&rec.TaxType, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		receipts = append(receipts, &rec)
	}

	return receipts, rows.Err()
}

func (r *ReceiptRepository) GetItems(ctx context.Context, receiptID uuid.UUID) ([]*models.ReceiptItem, error) {
	query := squirrel.Select("id", "receipt_id", "position", "description", "quantity",
		"unit_price_cents", "total_cents", "created_at").
		From("receipt_items").
		Where(squirrel.Eq{"receipt_id": receiptID}).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.ReceiptItem
	for rows.Next() {
		var item models.ReceiptItem
		if err := rows.Scan(
			&item.ID, &item.ReceiptID, &item.Position, &item.Description, &item.Quantity,
			&item.UnitPriceCents, &item.TotalCents, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}
