package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"guestpass-backend/mailer"
	"guestpass-backend/models"
	"guestpass-backend/monitoring"
	"guestpass-backend/qr"
	"guestpass-backend/store"
	"guestpass-backend/token"
)

var ErrAssociateCount = errors.New("number of associates does not match numAssociates")

type RegistrationService struct {
	store   store.Store
	issuer  token.Issuer
	mailer  mailer.Mailer
	baseURL string
	qrSize  int
	now     func() time.Time
}

func NewRegistrationService(s store.Store, issuer token.Issuer, m mailer.Mailer, baseURL string, qrSize int) *RegistrationService {
	return &RegistrationService{
		store:   s,
		issuer:  issuer,
		mailer:  m,
		baseURL: baseURL,
		qrSize:  qrSize,
		now:     time.Now,
	}
}

// Register issues a guest record and token for the main guest, an optional spouse
// and each associate, then saves them in a single store call. Nothing is kept if
// the save fails.
func (s *RegistrationService) Register(ctx context.Context, req models.RegistrationRequest) (models.RegistrationResponse, error) {
	if len(req.Associates) != req.MainGuest.NumAssociates {
		monitoring.TrackRegistration("invalid")
		return models.RegistrationResponse{Success: false, Message: ErrAssociateCount.Error()}, ErrAssociateCount
	}

	guests := s.buildGuests(req)
	logger := log.WithFields(log.Fields{"email": req.MainGuest.Email, "guests": len(guests)})

	if err := s.store.SaveGuests(ctx, guests); err != nil {
		logger.WithError(err).Error("Failed to save registration")
		monitoring.TrackRegistration("failed")
		return models.RegistrationResponse{Success: false, Message: "Registration failed"}, fmt.Errorf("save guests: %w", err)
	}

	monitoring.TrackRegistration("success")
	for _, g := range guests {
		monitoring.TrackGuestRegistered(string(g.Type))
	}
	logger.Info("Registration saved")

	summaries := lo.Map(guests, func(g models.Guest, _ int) models.GuestSummary {
		return models.GuestSummary{
			ID:    g.ID,
			Token: g.Token,
			Name:  g.FullName,
			Type:  g.Type,
			QRData: models.QRCodeData{
				Token:      g.Token,
				CheckInURL: qr.Encode(s.baseURL, g.Token),
			},
		}
	})

	s.sendPasses(ctx, logger, req.MainGuest.Email, summaries)

	return models.RegistrationResponse{
		Success: true,
		Message: "Registration successful",
		Guests:  summaries,
	}, nil
}

func (s *RegistrationService) buildGuests(req models.RegistrationRequest) []models.Guest {
	now := s.now()
	main := req.MainGuest

	guests := []models.Guest{{
		ID:               token.GuestID(string(models.GuestTypeVIP)),
		Token:            s.issuer.Issue(),
		Type:             models.GuestTypeVIP,
		Title:            main.Title,
		FirstName:        main.FirstName,
		Surname:          main.Surname,
		FullName:         fullName(main.Title, main.FirstName, main.Surname),
		Phone:            main.Phone,
		Email:            main.Email,
		ChurchName:       lo.ToPtr(main.ChurchName),
		Position:         lo.ToPtr(main.Position),
		WithCar:          main.WithCar,
		RegistrationDate: now,
	}}

	if main.WithSpouse {
		title := spouseTitle(main.Title)
		guests = append(guests, models.Guest{
			ID:               token.GuestID(string(models.GuestTypeSpouse)),
			Token:            s.issuer.Issue(),
			Type:             models.GuestTypeSpouse,
			Title:            title,
			Surname:          main.Surname,
			FullName:         fmt.Sprintf("%s %s (Spouse)", title, main.Surname),
			Phone:            main.Phone,
			Email:            main.Email,
			ChurchName:       lo.ToPtr(main.ChurchName),
			WithCar:          main.WithCar,
			RegistrationDate: now,
		})
	}

	for i, a := range req.Associates {
		guestType := associateType(i, len(req.Associates))
		guests = append(guests, models.Guest{
			ID:               token.GuestID(string(guestType)),
			Token:            s.issuer.Issue(),
			Type:             guestType,
			Title:            a.Title,
			FirstName:        a.FirstName,
			Surname:          a.Surname,
			FullName:         fullName(a.Title, a.FirstName, a.Surname),
			Phone:            a.Phone,
			WithCar:          a.WithCar,
			RegistrationDate: now,
		})
	}

	return guests
}

// sendPasses is best effort: the registration is already stored.
func (s *RegistrationService) sendPasses(ctx context.Context, logger *log.Entry, to string, guests []models.GuestSummary) {
	if s.mailer == nil || to == "" {
		return
	}

	codes := make([]mailer.QRCode, 0, len(guests))
	for _, g := range guests {
		img, err := qr.DataURL(g.QRData.CheckInURL, s.qrSize)
		if err != nil {
			logger.WithError(err).WithField("token", g.Token).Warn("Failed to render QR code")
			continue
		}
		codes = append(codes, mailer.QRCode{Name: g.Name, Token: g.Token, URL: g.QRData.CheckInURL, Image: img})
	}

	if err := s.mailer.SendQRCodes(ctx, to, codes); err != nil {
		logger.WithError(err).Warn("Failed to send QR codes")
	}
}

// associateType applies the PA rule: the first associate is the PA, but only
// when more than one associate is registered.
func associateType(index, total int) models.GuestType {
	if index == 0 && total > 1 {
		return models.GuestTypePA
	}
	return models.GuestTypeAssociate
}

func spouseTitle(mainTitle string) string {
	if mainTitle == "Mr." {
		return "Mrs."
	}
	return "Mr."
}

func fullName(parts ...string) string {
	return strings.Join(lo.Compact(parts), " ")
}
