package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/repository"
)

// ExportService renders administrative spreadsheet exports.
type ExportService struct {
	users    repository.UserRepository
	banks    repository.BloodBankRepository
	requests repository.BloodRequestRepository
	camps    repository.CampRepository
	events   repository.EventRepository
}

// ExportDependencies bundles repositories for the export service.
type ExportDependencies struct {
	UserRepo      repository.UserRepository
	BloodBankRepo repository.BloodBankRepository
	RequestRepo   repository.BloodRequestRepository
	CampRepo      repository.CampRepository
	EventRepo     repository.EventRepository
}

// NewExportService constructs the service.
func NewExportService(deps ExportDependencies) *ExportService {
	return &ExportService{
		users:    deps.UserRepo,
		banks:    deps.BloodBankRepo,
		requests: deps.RequestRepo,
		camps:    deps.CampRepo,
		events:   deps.EventRepo,
	}
}

var userExportHeader = []string{
	"Name", "Email", "Phone", "Blood Group", "Role", "Is Donor", "Available", "City", "Registered",
}

// ExportUsers renders all users as a spreadsheet.
func (s *ExportService) ExportUsers(ctx context.Context) ([]byte, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{
			u.Name, u.Email, u.Phone, string(u.BloodGroup), string(u.Role),
			boolLabel(u.IsDonor), boolLabel(u.IsAvailable), u.Address.City,
			u.CreatedAt.Format("2006-01-02"),
		})
	}
	return generateSheet("Users", userExportHeader, rows)
}

var requestExportHeader = []string{
	"Patient", "Blood Group", "Units", "Urgency", "Hospital", "Contact", "Status", "Responded By", "Created",
}

// ExportRequests renders all blood requests as a spreadsheet.
func (s *ExportService) ExportRequests(ctx context.Context) ([]byte, error) {
	requests, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(requests))
	for _, r := range requests {
		respondedBy := ""
		if r.BankResponse != nil {
			respondedBy = r.BankResponse.RespondedBy
		}
		rows = append(rows, []any{
			r.PatientName, string(r.BloodGroup), r.Units, string(r.Urgency),
			r.Hospital, r.ContactNumber, string(r.Status), respondedBy,
			r.CreatedAt.Format("2006-01-02"),
		})
	}
	return generateSheet("Blood Requests", requestExportHeader, rows)
}

var bankExportHeader = []string{
	"Name", "Email", "Phone", "License", "City", "Verified", "Total Units", "Registered",
}

// ExportBloodBanks renders all blood banks as a spreadsheet.
func (s *ExportService) ExportBloodBanks(ctx context.Context) ([]byte, error) {
	banks, err := s.banks.List(ctx, false)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(banks))
	for _, b := range banks {
		total := 0
		for _, item := range b.Inventory {
			total += item.Units
		}
		rows = append(rows, []any{
			b.Name, b.Email, b.Phone, b.LicenseNumber, b.Address.City,
			boolLabel(b.IsVerified), total, b.CreatedAt.Format("2006-01-02"),
		})
	}
	return generateSheet("Blood Banks", bankExportHeader, rows)
}

var campExportHeader = []string{
	"Name", "Venue", "Date", "Start", "End", "Target Units", "Collected Units", "Status", "Contact",
}

// ExportCamps renders all donation camps as a spreadsheet.
func (s *ExportService) ExportCamps(ctx context.Context) ([]byte, error) {
	camps, err := s.camps.List(ctx, repository.CampFilter{Limit: 10000})
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(camps))
	for _, c := range camps {
		rows = append(rows, []any{
			c.Name, c.Venue, c.Date.Format("2006-01-02"), c.StartTime, c.EndTime,
			c.TargetUnits, c.CollectedUnits, string(c.Status), c.ContactPhone,
		})
	}
	return generateSheet("Donation Camps", campExportHeader, rows)
}

var eventExportHeader = []string{
	"Title", "Venue", "Date", "Participants", "Created",
}

// ExportEvents renders all community events as a spreadsheet.
func (s *ExportService) ExportEvents(ctx context.Context) ([]byte, error) {
	communityEvents, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(communityEvents))
	for _, e := range communityEvents {
		rows = append(rows, []any{
			e.Title, e.Venue, e.Date.Format("2006-01-02"),
			len(e.Participants), e.CreatedAt.Format("2006-01-02"),
		})
	}
	return generateSheet("Community Events", eventExportHeader, rows)
}

var registrationExportHeader = []string{
	"Name", "Phone", "Blood Group", "Registered At",
}

// ExportCampRegistrations renders the sign-up list of one camp.
func (s *ExportService) ExportCampRegistrations(ctx context.Context, registrations []domain.CampRegistration) ([]byte, error) {
	rows := make([][]any, 0, len(registrations))
	for _, reg := range registrations {
		rows = append(rows, []any{
			reg.UserName, reg.UserPhone, string(reg.BloodGroup),
			reg.RegisteredAt.Format(time.RFC3339),
		})
	}
	return generateSheet("Registrations", registrationExportHeader, rows)
}

// generateSheet builds a single-sheet workbook with a bold, filled header
// row and returns its bytes.
func generateSheet(sheetName string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FDE8E8"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		startCell := "A" + strconv.Itoa(rowIdx+2)
		if err := f.SetSheetRow(sheetName, startCell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func boolLabel(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
