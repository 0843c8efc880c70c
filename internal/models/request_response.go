package models

// Request models
type SignUpRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateProductionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type AddCrewRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Permissions string `json:"permissions" binding:"required,oneof=read write"`
}

// RateCardRequest carries a full rate-card edit. Zeroed multipliers mean
// "not set" and default to 1.0; supplied values are clamped to [1.0, 5.0]
// by the service.
type RateCardRequest struct {
	DailyRate            float64 `json:"dailyRate" binding:"required,gt=0"`
	BaseContract         string  `json:"baseContract" binding:"omitempty,oneof=10+1 11+1"`
	DayType              string  `json:"dayType" binding:"omitempty,oneof=SWD CWD SCWD"`
	PreCallMultiplier    float64 `json:"preCallMultiplier" binding:"omitempty,gt=0"`
	OTMultiplier         float64 `json:"otMultiplier" binding:"omitempty,gt=0"`
	LateNightMultiplier  float64 `json:"lateNightMultiplier" binding:"omitempty,gt=0"`
	SixthDayMultiplier   float64 `json:"sixthDayMultiplier" binding:"omitempty,gt=0"`
	SeventhDayMultiplier float64 `json:"seventhDayMultiplier" binding:"omitempty,gt=0"`
	KitRental            float64 `json:"kitRental" binding:"omitempty,gte=0"`
}

// TimesheetEntryRequest carries a full overwrite of one date's entry.
// A nil LunchTakenMinutes re-derives the unpaid lunch from the day type.
type TimesheetEntryRequest struct {
	DayType           string `json:"dayType" binding:"omitempty,oneof=SWD CWD SCWD"`
	PreCall           string `json:"preCall" binding:"omitempty,datetime=15:04"`
	UnitCall          string `json:"unitCall" binding:"omitempty,datetime=15:04"`
	LunchStart        string `json:"lunchStart" binding:"omitempty,datetime=15:04"`
	OutOfChair        string `json:"outOfChair" binding:"omitempty,datetime=15:04"`
	WrapOut           string `json:"wrapOut" binding:"omitempty,datetime=15:04"`
	LunchTakenMinutes *int   `json:"lunchTakenMinutes" binding:"omitempty,gte=0"`
	IsSixthDay        bool   `json:"isSixthDay"`
	IsSeventhDay      bool   `json:"isSeventhDay"`
	Notes             string `json:"notes"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type UserResponse struct {
	Status string `json:"status"`
	User   *User  `json:"user"`
}

type ProductionResponse struct {
	Status       string `json:"status"`
	ProductionID string `json:"productionId,omitempty"`
	Title        string `json:"title,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type ProductionListResponse struct {
	Status      string       `json:"status"`
	Productions []Production `json:"productions"`
}

type AddCrewResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	UserID      string `json:"userId,omitempty"`
	Email       string `json:"email,omitempty"`
	Permissions string `json:"permissions,omitempty"`
}

type CrewListResponse struct {
	Status string           `json:"status"`
	Crew   []ProductionCrew `json:"crew"`
}

type RateCardResponse struct {
	Status   string    `json:"status"`
	RateCard *RateCard `json:"rateCard"`
}

type TimesheetDayResponse struct {
	Status      string                `json:"status"`
	Entry       *TimesheetEntry       `json:"entry"`
	Calculation *TimesheetCalculation `json:"calculation"`
}

type WeekSummaryResponse struct {
	Status  string       `json:"status"`
	Summary *WeekSummary `json:"summary"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
