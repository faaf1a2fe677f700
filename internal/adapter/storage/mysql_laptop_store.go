package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/rl1809/pcbook/internal/core/domain"
)

const (
	mysqlDuplicateEntry = 1062
	maxRateAttempts     = 10
)

var ErrOptimisticLock = errors.New("optimistic lock conflict")

const selectLaptops = `SELECT payload, rating_count, rating_average FROM laptops`

type MySQLLaptopStore struct {
	db *sql.DB
}

func NewMySQLLaptopStore(db *sql.DB) *MySQLLaptopStore {
	return &MySQLLaptopStore{db: db}
}

// Migrate creates the tables used by the store if they are missing.
func (m *MySQLLaptopStore) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS laptops (
			id CHAR(36) NOT NULL PRIMARY KEY,
			payload JSON NOT NULL,
			rating_count INT UNSIGNED NOT NULL DEFAULT 0,
			rating_average DOUBLE NOT NULL DEFAULT 0,
			version INT NOT NULL DEFAULT 0,
			created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
		)`,
		`CREATE TABLE IF NOT EXISTS laptop_images (
			seq BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			laptop_id CHAR(36) NOT NULL,
			image_id CHAR(36) NOT NULL,
			INDEX idx_laptop_images_laptop (laptop_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (m *MySQLLaptopStore) Save(ctx context.Context, laptop domain.Laptop) error {
	payload, err := encodeDocument(laptop)
	if err != nil {
		return err
	}

	_, err = m.db.ExecContext(ctx, `INSERT INTO laptops (id, payload) VALUES (?, ?)`, laptop.ID, payload)
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("laptop %s: %w", laptop.ID, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("insert laptop: %w", err)
	}
	return nil
}

func (m *MySQLLaptopStore) Find(ctx context.Context, id string) (domain.Laptop, error) {
	row := m.db.QueryRowContext(ctx, selectLaptops+` WHERE id = ?`, id)

	laptop, err := scanLaptop(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Laptop{}, fmt.Errorf("laptop %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Laptop{}, fmt.Errorf("query laptop: %w", err)
	}

	images, err := m.loadImages(ctx, `WHERE laptop_id = ?`, id)
	if err != nil {
		return domain.Laptop{}, err
	}
	laptop.ImageIDs = images[laptop.ID]
	return laptop, nil
}

// Search reads the laptops first and their images second, so the result
// set is a snapshot taken before any callback runs.
func (m *MySQLLaptopStore) Search(ctx context.Context, filter domain.Filter, found func(domain.Laptop) error) error {
	laptops, err := m.matchingLaptops(ctx, filter)
	if err != nil {
		return err
	}
	if len(laptops) == 0 {
		return nil
	}

	images, err := m.loadImages(ctx, "")
	if err != nil {
		return err
	}

	for _, laptop := range laptops {
		if err := ctx.Err(); err != nil {
			return err
		}
		laptop.ImageIDs = images[laptop.ID]
		if err := found(laptop); err != nil {
			return err
		}
	}
	return nil
}

func (m *MySQLLaptopStore) matchingLaptops(ctx context.Context, filter domain.Filter) ([]domain.Laptop, error) {
	rows, err := m.db.QueryContext(ctx, selectLaptops+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query laptops: %w", err)
	}
	defer rows.Close()

	var laptops []domain.Laptop
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		laptop, err := scanLaptop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan laptop: %w", err)
		}
		if filter.Matches(laptop) {
			laptops = append(laptops, laptop)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate laptops: %w", err)
	}
	return laptops, nil
}

// loadImages returns image IDs keyed by laptop ID in upload order.
func (m *MySQLLaptopStore) loadImages(ctx context.Context, where string, args ...any) (map[string][]string, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT laptop_id, image_id FROM laptop_images `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("query laptop images: %w", err)
	}
	defer rows.Close()

	images := make(map[string][]string)
	for rows.Next() {
		var laptopID, imageID string
		if err := rows.Scan(&laptopID, &imageID); err != nil {
			return nil, fmt.Errorf("scan laptop image: %w", err)
		}
		images[laptopID] = append(images[laptopID], imageID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate laptop images: %w", err)
	}
	return images, nil
}

// Rate applies the score with a compare-and-swap on the version column,
// retrying when a concurrent rater wins the race.
func (m *MySQLLaptopStore) Rate(ctx context.Context, id string, score float64) (domain.Rating, error) {
	for attempt := 0; attempt < maxRateAttempts; attempt++ {
		var (
			current domain.Rating
			version int
		)
		err := m.db.QueryRowContext(ctx, `
			SELECT rating_count, rating_average, version
			FROM laptops WHERE id = ?`, id,
		).Scan(&current.Count, &current.Average, &version)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Rating{}, fmt.Errorf("laptop %s: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return domain.Rating{}, fmt.Errorf("query rating: %w", err)
		}

		next := current.Add(score)
		result, err := m.db.ExecContext(ctx, `
			UPDATE laptops
			SET rating_count = ?, rating_average = ?, version = version + 1
			WHERE id = ? AND version = ?`,
			next.Count, next.Average, id, version,
		)
		if err != nil {
			return domain.Rating{}, fmt.Errorf("update rating: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return domain.Rating{}, fmt.Errorf("rating rows affected: %w", err)
		}
		if rows == 1 {
			return next, nil
		}
	}
	return domain.Rating{}, fmt.Errorf("rate laptop %s: %w", id, ErrOptimisticLock)
}

func (m *MySQLLaptopStore) AttachImage(ctx context.Context, id string, imageID string) error {
	result, err := m.db.ExecContext(ctx, `
		INSERT INTO laptop_images (laptop_id, image_id)
		SELECT id, ? FROM laptops WHERE id = ?`,
		imageID, id,
	)
	if err != nil {
		return fmt.Errorf("insert laptop image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("laptop image rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("laptop %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLaptop(row rowScanner) (domain.Laptop, error) {
	var (
		payload []byte
		rating  domain.Rating
	)
	if err := row.Scan(&payload, &rating.Count, &rating.Average); err != nil {
		return domain.Laptop{}, err
	}

	laptop, err := decodeDocument(payload)
	if err != nil {
		return domain.Laptop{}, err
	}
	laptop.Rating = rating
	return laptop, nil
}
