package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ewenharris/setbook-server/internal/models"
	"github.com/ewenharris/setbook-server/internal/repository"
	"github.com/ewenharris/setbook-server/internal/timesheet"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const dateLayout = "2006-01-02"

// Multiplier bounds enforced on rate card writes. The calculation engine
// itself accepts any positive multiplier.
const (
	minMultiplier = 1.0
	maxMultiplier = 5.0
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.UserResponse, error)

	// Production operations
	CreateProduction(ctx context.Context, userID string, req models.CreateProductionRequest) (*models.ProductionResponse, error)
	ListProductions(ctx context.Context, userID string) (*models.ProductionListResponse, error)
	DeleteProduction(ctx context.Context, userID, productionID string) error

	// Crew operations
	AddCrewMember(ctx context.Context, userID, productionID string, req models.AddCrewRequest) (*models.AddCrewResponse, error)
	ListCrew(ctx context.Context, userID, productionID string) (*models.CrewListResponse, error)

	// Rate card operations
	UpsertRateCard(ctx context.Context, userID, productionID string, req models.RateCardRequest) (*models.RateCardResponse, error)
	GetRateCard(ctx context.Context, userID, productionID string) (*models.RateCardResponse, error)

	// Timesheet operations
	UpsertTimesheetEntry(ctx context.Context, userID, productionID, date string, req models.TimesheetEntryRequest) (*models.TimesheetDayResponse, error)
	GetTimesheetDay(ctx context.Context, userID, productionID, date string) (*models.TimesheetDayResponse, error)
	GetWeekSummary(ctx context.Context, userID, productionID, weekStart string) (*models.WeekSummaryResponse, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

// Authentication methods
func (s *DefaultService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	// Check if user already exists
	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// Create the user
	user := &models.User{
		ID:         uuid.New().String(),
		Email:      req.Email,
		Name:       req.Name,
		Password:   string(hashedPassword),
		Department: req.Department,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &models.AuthResponse{
		Status: "success",
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	// Get the user
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Generate JWT token
	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		UserID:    user.ID,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

func (s *DefaultService) GetProfile(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return &models.UserResponse{
		Status: "success",
		User:   user,
	}, nil
}

// Production operations
func (s *DefaultService) CreateProduction(
	ctx context.Context,
	userID string,
	req models.CreateProductionRequest,
) (*models.ProductionResponse, error) {
	// Create the production; the creator is enrolled as crew with write
	// permission in the same transaction
	production := &models.Production{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   userID,
	}

	if err := s.repo.CreateProduction(ctx, production); err != nil {
		return nil, fmt.Errorf("error creating production: %w", err)
	}

	return &models.ProductionResponse{
		Status:       "success",
		ProductionID: production.ID,
		Title:        production.Title,
		CreatedAt:    production.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *DefaultService) ListProductions(ctx context.Context, userID string) (*models.ProductionListResponse, error) {
	productions, err := s.repo.GetUserProductions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing productions: %w", err)
	}

	if productions == nil {
		productions = []models.Production{}
	}

	return &models.ProductionListResponse{
		Status:      "success",
		Productions: productions,
	}, nil
}

func (s *DefaultService) DeleteProduction(ctx context.Context, userID, productionID string) error {
	// Check if production exists
	production, err := s.repo.GetProduction(ctx, productionID)
	if err != nil {
		return fmt.Errorf("error getting production: %w", err)
	}

	if production == nil {
		return ErrProductionNotFound
	}

	// Only the creator may delete a production
	if production.CreatedBy != userID {
		return ErrNotCreator
	}

	// Delete the production and everything hanging off it
	if err := s.repo.DeleteProduction(ctx, productionID); err != nil {
		return fmt.Errorf("error deleting production: %w", err)
	}

	return nil
}

// Crew operations
func (s *DefaultService) AddCrewMember(
	ctx context.Context,
	userID string,
	productionID string,
	req models.AddCrewRequest,
) (*models.AddCrewResponse, error) {
	// Check if the requesting user has write permission
	hasAccess, err := s.repo.CheckProductionAccess(ctx, productionID, userID, "write")
	if err != nil {
		return nil, fmt.Errorf("error checking production access: %w", err)
	}

	if !hasAccess {
		return nil, ErrWriteAccessDenied
	}

	// Get the user to add by email
	userToAdd, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if userToAdd == nil {
		return nil, ErrUserNotFound
	}

	// Create the crew membership; an existing one has its permissions updated
	crew := &models.ProductionCrew{
		ProductionID: productionID,
		UserID:       userToAdd.ID,
		Permissions:  req.Permissions,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.AddCrewMember(ctx, crew); err != nil {
		return nil, fmt.Errorf("error adding crew member: %w", err)
	}

	return &models.AddCrewResponse{
		Status:      "success",
		Message:     "User added to crew successfully",
		UserID:      userToAdd.ID,
		Email:       userToAdd.Email,
		Permissions: req.Permissions,
	}, nil
}

func (s *DefaultService) ListCrew(ctx context.Context, userID, productionID string) (*models.CrewListResponse, error) {
	// Check if user has read permission
	hasAccess, err := s.repo.CheckProductionAccess(ctx, productionID, userID, "read")
	if err != nil {
		return nil, fmt.Errorf("error checking production access: %w", err)
	}

	if !hasAccess {
		return nil, ErrReadAccessDenied
	}

	crew, err := s.repo.GetProductionCrew(ctx, productionID)
	if err != nil {
		return nil, fmt.Errorf("error listing crew: %w", err)
	}

	if crew == nil {
		crew = []models.ProductionCrew{}
	}

	return &models.CrewListResponse{
		Status: "success",
		Crew:   crew,
	}, nil
}

// Rate card operations
func (s *DefaultService) UpsertRateCard(
	ctx context.Context,
	userID string,
	productionID string,
	req models.RateCardRequest,
) (*models.RateCardResponse, error) {
	// Check if user has write permission
	hasAccess, err := s.repo.CheckProductionAccess(ctx, productionID, userID, "write")
	if err != nil {
		return nil, fmt.Errorf("error checking production access: %w", err)
	}

	if !hasAccess {
		return nil, ErrWriteAccessDenied
	}

	baseContract := models.BaseContract(req.BaseContract)
	if !baseContract.IsValid() {
		baseContract = models.BaseContract11
	}

	dayType := models.DayType(req.DayType)
	if !dayType.IsValid() {
		dayType = models.DayTypeSWD
	}

	card := &models.RateCard{
		ProductionID:         productionID,
		UserID:               userID,
		DailyRate:            req.DailyRate,
		BaseContract:         baseContract,
		DayType:              dayType,
		PreCallMultiplier:    clampMultiplier(req.PreCallMultiplier),
		OTMultiplier:         clampMultiplier(req.OTMultiplier),
		LateNightMultiplier:  clampMultiplier(req.LateNightMultiplier),
		SixthDayMultiplier:   clampMultiplier(req.SixthDayMultiplier),
		SeventhDayMultiplier: clampMultiplier(req.SeventhDayMultiplier),
		KitRental:            req.KitRental,
	}

	if err := s.repo.UpsertRateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("error saving rate card: %w", err)
	}

	return &models.RateCardResponse{
		Status:   "success",
		RateCard: card,
	}, nil
}

func (s *DefaultService) GetRateCard(ctx context.Context, userID, productionID string) (*models.RateCardResponse, error) {
	// Check if user has read permission
	hasAccess, err := s.repo.CheckProductionAccess(ctx, productionID, userID, "read")
	if err != nil {
		return nil, fmt.Errorf("error checking production access: %w", err)
	}

	if !hasAccess {
		return nil, ErrReadAccessDenied
	}

	card, err := s.repo.GetRateCard(ctx, productionID, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting rate card: %w", err)
	}

	if card == nil {
		return nil, ErrNoRateCard
	}

	return &models.RateCardResponse{
		Status:   "success",
		RateCard: card,
	}, nil
}

// Timesheet operations
func (s *DefaultService) UpsertTimesheetEntry(
	ctx context.Context,
	userID string,
	productionID string,
	date string,
	req models.TimesheetEntryRequest,
) (*models.TimesheetDayResponse, error) {
	// Check if user has write permission
	hasAccess, err := s.repo.CheckProductionAccess(ctx, productionID, userID, "write")
	if err != nil {
		return nil, fmt.Errorf("error checking production access: %w", err)
	}

	if !hasAccess {
		return nil, ErrWriteAccessDenied
	}

	if !validDate(date) {
		return nil, ErrInvalidDate
	}

	// The rate card supplies the default day type for new entries and the
	// pay configuration for the returned calculation
	card, err := s.repo.GetRateCard(ctx, productionID, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting rate card: %w", err)
	}

	dayType := models.DayType(req.DayType)
	if !dayType.IsValid() {
		dayType = models.DayTypeSWD
		if card != nil && card.DayType.IsValid() {
			dayType = card.DayType
		}
	}

	// An omitted lunch re-derives from the day type; an explicit value,
	// zero included, overrides it
	lunchTakenMinutes := dayType.LunchMinutes()
	if req.LunchTakenMinutes != nil {
		lunchTakenMinutes = *req.LunchTakenMinutes
	}

	// Sixth and seventh day are mutually exclusive, seventh winning
	isSixthDay := req.IsSixthDay
	if req.IsSeventhDay {
		isSixthDay = false
	}

	entry := &models.TimesheetEntry{
		ProductionID:      productionID,
		UserID:            userID,
		Date:              date,
		DayType:           dayType,
		PreCall:           req.PreCall,
		UnitCall:          req.UnitCall,
		LunchStart:        req.LunchStart,
		OutOfChair:        req.OutOfChair,
		WrapOut:           req.WrapOut,
		LunchTakenMinutes: lunchTakenMinutes,
		IsSixthDay:        isSixthDay,
		IsSeventhDay:      req.IsSeventhDay,
		Notes:             req.Notes,
	}

	if err := s.repo.UpsertTimesheetEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("error saving timesheet entry: %w", err)
	}

	calc, err := s.calculateEntry(ctx, entry, card)
	if err != nil {
		return nil, err
	}

	return &models.TimesheetDayResponse{
		Status:      "success",
		Entry:       entry,
		Calculation: calc,
	}, nil
}

func (s *DefaultService) GetTimesheetDay(
	ctx context.Context,
	userID string,
	productionID string,
	date string,
) (*models.TimesheetDayResponse, error) {
	// Check if user has read permission
	hasAccess, err := s.repo.CheckProductionAccess(ctx, productionID, userID, "read")
	if err != nil {
		return nil, fmt.Errorf("error checking production access: %w", err)
	}

	if !hasAccess {
		return nil, ErrReadAccessDenied
	}

	if !validDate(date) {
		return nil, ErrInvalidDate
	}

	entry, err := s.repo.GetTimesheetEntry(ctx, productionID, userID, date)
	if err != nil {
		return nil, fmt.Errorf("error getting timesheet entry: %w", err)
	}

	if entry == nil {
		return nil, ErrEntryNotFound
	}

	card, err := s.repo.GetRateCard(ctx, productionID, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting rate card: %w", err)
	}

	calc, err := s.calculateEntry(ctx, entry, card)
	if err != nil {
		return nil, err
	}

	return &models.TimesheetDayResponse{
		Status:      "success",
		Entry:       entry,
		Calculation: calc,
	}, nil
}

func (s *DefaultService) GetWeekSummary(
	ctx context.Context,
	userID string,
	productionID string,
	weekStart string,
) (*models.WeekSummaryResponse, error) {
	// Check if user has read permission
	hasAccess, err := s.repo.CheckProductionAccess(ctx, productionID, userID, "read")
	if err != nil {
		return nil, fmt.Errorf("error checking production access: %w", err)
	}

	if !hasAccess {
		return nil, ErrReadAccessDenied
	}

	if !validDate(weekStart) {
		return nil, ErrInvalidDate
	}

	// A week summary is a payroll figure; without a rate card there is
	// nothing meaningful to report
	card, err := s.repo.GetRateCard(ctx, productionID, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting rate card: %w", err)
	}

	if card == nil {
		return nil, ErrNoRateCard
	}

	// Load the week plus the date before it, so the first day's
	// turnaround check sees the prior week's wrap
	start, _ := time.Parse(dateLayout, weekStart)
	fromDate := start.AddDate(0, 0, -1).Format(dateLayout)
	toDate := start.AddDate(0, 0, 6).Format(dateLayout)

	entries, err := s.repo.GetTimesheetEntriesInRange(ctx, productionID, userID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("error getting timesheet entries: %w", err)
	}

	entriesByDate := make(map[string]models.TimesheetEntry, len(entries))
	for _, entry := range entries {
		entriesByDate[entry.Date] = entry
	}

	summary := timesheet.SummarizeWeek(weekStart, entriesByDate, *card)

	return &models.WeekSummaryResponse{
		Status:  "success",
		Summary: &summary,
	}, nil
}

// Helper methods
func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": user.ID, // subject
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// calculateEntry runs the day calculation for an entry, looking up the prior
// calendar date's wrap for the turnaround check. A missing rate card yields
// an hours-only calculation at zero pay.
func (s *DefaultService) calculateEntry(ctx context.Context, entry *models.TimesheetEntry, card *models.RateCard) (*models.TimesheetCalculation, error) {
	day, err := time.Parse(dateLayout, entry.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	previousWrapOut := ""
	prevEntry, err := s.repo.GetTimesheetEntry(ctx, entry.ProductionID, entry.UserID, day.AddDate(0, 0, -1).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("error getting previous day's entry: %w", err)
	}
	if prevEntry != nil {
		previousWrapOut = prevEntry.WrapOut
	}

	rate := models.RateCard{}
	if card != nil {
		rate = *card
	}

	calc := timesheet.CalculateDay(*entry, rate, previousWrapOut)
	return &calc, nil
}

// clampMultiplier keeps a configured multiplier inside the supported editing
// range. Zero means unset and resolves to the neutral 1.0.
func clampMultiplier(m float64) float64 {
	if m < minMultiplier {
		return minMultiplier
	}
	if m > maxMultiplier {
		return maxMultiplier
	}
	return m
}

func validDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}
