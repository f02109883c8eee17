package models

// MainGuestRequest mirrors the registration form for the VIP registrant.
type MainGuestRequest struct {
	Title         string `json:"title" binding:"required"`
	Surname       string `json:"surname" binding:"required,min=2"`
	FirstName     string `json:"firstName" binding:"required,min=2"`
	Phone         string `json:"phone" binding:"required,phone"`
	Email         string `json:"email" binding:"required,email"`
	ChurchName    string `json:"churchName" binding:"required,min=2"`
	Position      string `json:"position" binding:"required,min=2"`
	WithSpouse    bool   `json:"withSpouse"`
	WithCar       bool   `json:"withCar"`
	NumAssociates int    `json:"numAssociates" binding:"min=0,max=10"`
}

type AssociateRequest struct {
	Title     string `json:"title" binding:"required"`
	Surname   string `json:"surname" binding:"required,min=2"`
	FirstName string `json:"firstName" binding:"required,min=2"`
	Phone     string `json:"phone" binding:"required,phone"`
	WithCar   bool   `json:"withCar"`
}

type RegistrationRequest struct {
	MainGuest  MainGuestRequest   `json:"mainGuest" binding:"required"`
	Associates []AssociateRequest `json:"associates" binding:"max=10,dive"`
}

type RegistrationResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Guests  []GuestSummary `json:"guests"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type DashboardStats struct {
	TotalGuests    int        `json:"totalGuests"`
	TotalCheckIns  int        `json:"totalCheckIns"`
	VIPCount       int        `json:"vipCount"`
	SpouseCount    int        `json:"spouseCount"`
	PACount        int        `json:"paCount"`
	AssociateCount int        `json:"associateCount"`
	WithCarCount   int        `json:"withCarCount"`
	PerDayCheckIns []DayCount `json:"perDayCheckIns"`
}
