package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ewenharris/setbook-server/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Production operations
	CreateProduction(ctx context.Context, production *models.Production) error
	DeleteProduction(ctx context.Context, productionID string) error
	GetProduction(ctx context.Context, productionID string) (*models.Production, error)
	GetUserProductions(ctx context.Context, userID string) ([]models.Production, error)

	// Crew operations
	AddCrewMember(ctx context.Context, crew *models.ProductionCrew) error
	CheckProductionAccess(ctx context.Context, productionID, userID string, requiredPermission string) (bool, error)
	GetProductionCrew(ctx context.Context, productionID string) ([]models.ProductionCrew, error)

	// Rate card operations
	UpsertRateCard(ctx context.Context, card *models.RateCard) error
	GetRateCard(ctx context.Context, productionID, userID string) (*models.RateCard, error)

	// Timesheet operations
	UpsertTimesheetEntry(ctx context.Context, entry *models.TimesheetEntry) error
	GetTimesheetEntry(ctx context.Context, productionID, userID, date string) (*models.TimesheetEntry, error)
	GetTimesheetEntriesInRange(ctx context.Context, productionID, userID, fromDate, toDate string) ([]models.TimesheetEntry, error)
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, password, department, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	// Generate a new UUID if not provided
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Password, user.Department,
		user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

// Production repository methods
func (r *PostgresRepository) CreateProduction(ctx context.Context, production *models.Production) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	query := `
		INSERT INTO productions (id, title, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// Generate a new UUID if not provided
	if production.ID == "" {
		production.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	production.CreatedAt = now
	production.UpdatedAt = now

	_, err = tx.ExecContext(ctx, query,
		production.ID, production.Title, production.Description,
		production.CreatedBy, production.CreatedAt, production.UpdatedAt)

	if err != nil {
		return err
	}

	// Enroll the creator as crew with write permissions
	crew := &models.ProductionCrew{
		ProductionID: production.ID,
		UserID:       production.CreatedBy,
		Permissions:  "write",
		CreatedAt:    now,
	}

	err = r.addCrewMemberTx(ctx, tx, crew)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteProduction(ctx context.Context, productionID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	// Delete dependent rows first (due to foreign key constraints)
	_, err = tx.ExecContext(ctx, `DELETE FROM timesheet_entries WHERE production_id = $1`, productionID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM rate_cards WHERE production_id = $1`, productionID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM production_crew WHERE production_id = $1`, productionID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM productions WHERE id = $1`, productionID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetProduction(ctx context.Context, productionID string) (*models.Production, error) {
	query := `SELECT * FROM productions WHERE id = $1`

	var production models.Production
	err := r.db.GetContext(ctx, &production, query, productionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Production not found
		}
		return nil, err
	}

	return &production, nil
}

func (r *PostgresRepository) GetUserProductions(ctx context.Context, userID string) ([]models.Production, error) {
	query := `
		SELECT p.* FROM productions p
		JOIN production_crew pc ON p.id = pc.production_id
		WHERE pc.user_id = $1
		ORDER BY p.created_at ASC
	`

	var productions []models.Production
	err := r.db.SelectContext(ctx, &productions, query, userID)
	if err != nil {
		return nil, err
	}

	return productions, nil
}

// Crew repository methods
// addCrewMemberTx adds a user to a production's crew within an existing transaction
func (r *PostgresRepository) addCrewMemberTx(ctx context.Context, tx *sql.Tx, crew *models.ProductionCrew) error {
	// Check if entry already exists
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM production_crew WHERE production_id = $1 AND user_id = $2)`,
		crew.ProductionID, crew.UserID).Scan(&exists)

	if err != nil {
		return err
	}

	if exists {
		// Update the permissions if the user is already on the crew
		query := `UPDATE production_crew SET permissions = $1 WHERE production_id = $2 AND user_id = $3`
		_, err = tx.ExecContext(ctx, query,
			crew.Permissions, crew.ProductionID, crew.UserID)
	} else {
		// Add the user to the crew
		query := `INSERT INTO production_crew (production_id, user_id, permissions, created_at) VALUES ($1, $2, $3, $4)`

		if crew.CreatedAt.IsZero() {
			crew.CreatedAt = time.Now().UTC()
		}

		_, err = tx.ExecContext(ctx, query,
			crew.ProductionID, crew.UserID, crew.Permissions, crew.CreatedAt)
	}

	return err
}

func (r *PostgresRepository) AddCrewMember(ctx context.Context, crew *models.ProductionCrew) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	err = r.addCrewMemberTx(ctx, tx, crew)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) CheckProductionAccess(
	ctx context.Context,
	productionID string,
	userID string,
	requiredPermission string,
) (bool, error) {
	query := `SELECT permissions FROM production_crew WHERE production_id = $1 AND user_id = $2`

	var permission string
	err := r.db.GetContext(ctx, &permission, query, productionID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil // Not on the crew
		}
		return false, err
	}

	// If write permission is required, check if user has write permission
	// If read permission is required, both read and write permissions are sufficient
	if requiredPermission == "write" {
		return permission == "write", nil
	}

	return true, nil // User has access
}

func (r *PostgresRepository) GetProductionCrew(ctx context.Context, productionID string) ([]models.ProductionCrew, error) {
	query := `SELECT * FROM production_crew WHERE production_id = $1`

	var crew []models.ProductionCrew
	err := r.db.SelectContext(ctx, &crew, query, productionID)
	if err != nil {
		return nil, err
	}

	return crew, nil
}

// Rate card repository methods
func (r *PostgresRepository) UpsertRateCard(ctx context.Context, card *models.RateCard) error {
	// Generate a new UUID if not provided
	if card.ID == "" {
		card.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	card.UpdatedAt = now

	// One rate card per crew member per production; writes overwrite in place.
	query := `
		INSERT INTO rate_cards (id, production_id, user_id, daily_rate, base_contract, day_type,
			pre_call_multiplier, ot_multiplier, late_night_multiplier,
			sixth_day_multiplier, seventh_day_multiplier, kit_rental, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (production_id, user_id)
		DO UPDATE SET
			daily_rate = EXCLUDED.daily_rate,
			base_contract = EXCLUDED.base_contract,
			day_type = EXCLUDED.day_type,
			pre_call_multiplier = EXCLUDED.pre_call_multiplier,
			ot_multiplier = EXCLUDED.ot_multiplier,
			late_night_multiplier = EXCLUDED.late_night_multiplier,
			sixth_day_multiplier = EXCLUDED.sixth_day_multiplier,
			seventh_day_multiplier = EXCLUDED.seventh_day_multiplier,
			kit_rental = EXCLUDED.kit_rental,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	return r.db.QueryRowContext(ctx, query,
		card.ID, card.ProductionID, card.UserID, card.DailyRate, card.BaseContract, card.DayType,
		card.PreCallMultiplier, card.OTMultiplier, card.LateNightMultiplier,
		card.SixthDayMultiplier, card.SeventhDayMultiplier, card.KitRental,
		now, now).Scan(&card.ID, &card.CreatedAt)
}

func (r *PostgresRepository) GetRateCard(ctx context.Context, productionID, userID string) (*models.RateCard, error) {
	query := `SELECT * FROM rate_cards WHERE production_id = $1 AND user_id = $2`

	var card models.RateCard
	err := r.db.GetContext(ctx, &card, query, productionID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Rate card not found
		}
		return nil, err
	}

	return &card, nil
}

// Timesheet repository methods
func (r *PostgresRepository) UpsertTimesheetEntry(ctx context.Context, entry *models.TimesheetEntry) error {
	// Generate a new UUID if not provided
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	entry.UpdatedAt = now

	// One entry per crew member per date; concurrent writers race on the
	// whole row and the last write wins.
	query := `
		INSERT INTO timesheet_entries (id, production_id, user_id, date, day_type,
			pre_call, unit_call, lunch_start, out_of_chair, wrap_out,
			lunch_taken_minutes, is_sixth_day, is_seventh_day, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (production_id, user_id, date)
		DO UPDATE SET
			day_type = EXCLUDED.day_type,
			pre_call = EXCLUDED.pre_call,
			unit_call = EXCLUDED.unit_call,
			lunch_start = EXCLUDED.lunch_start,
			out_of_chair = EXCLUDED.out_of_chair,
			wrap_out = EXCLUDED.wrap_out,
			lunch_taken_minutes = EXCLUDED.lunch_taken_minutes,
			is_sixth_day = EXCLUDED.is_sixth_day,
			is_seventh_day = EXCLUDED.is_seventh_day,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	return r.db.QueryRowContext(ctx, query,
		entry.ID, entry.ProductionID, entry.UserID, entry.Date, entry.DayType,
		entry.PreCall, entry.UnitCall, entry.LunchStart, entry.OutOfChair, entry.WrapOut,
		entry.LunchTakenMinutes, entry.IsSixthDay, entry.IsSeventhDay, entry.Notes,
		now, now).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *PostgresRepository) GetTimesheetEntry(ctx context.Context, productionID, userID, date string) (*models.TimesheetEntry, error) {
	query := `SELECT * FROM timesheet_entries WHERE production_id = $1 AND user_id = $2 AND date = $3`

	var entry models.TimesheetEntry
	err := r.db.GetContext(ctx, &entry, query, productionID, userID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Entry not found
		}
		return nil, err
	}

	return &entry, nil
}

func (r *PostgresRepository) GetTimesheetEntriesInRange(
	ctx context.Context,
	productionID string,
	userID string,
	fromDate string,
	toDate string,
) ([]models.TimesheetEntry, error) {
	// ISO dates compare lexicographically in chronological order.
	query := `
		SELECT * FROM timesheet_entries
		WHERE production_id = $1 AND user_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date ASC
	`

	var entries []models.TimesheetEntry
	err := r.db.SelectContext(ctx, &entries, query, productionID, userID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
