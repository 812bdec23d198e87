package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

func TestExportUsersProducesWorkbook(t *testing.T) {
	users := newFakeUserRepo()
	require.NoError(t, users.Create(context.Background(), &domain.User{
		Name:       "Asha",
		Email:      "asha@example.com",
		BloodGroup: domain.BloodGroupOPositive,
		Role:       domain.UserRoleDonor,
		IsDonor:    true,
		Address:    domain.Address{City: "Pune"},
	}))

	svc := NewExportService(ExportDependencies{UserRepo: users})
	content, err := svc.ExportUsers(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	require.Contains(t, f.GetSheetList(), "Users")

	header, err := f.GetCellValue("Users", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)

	name, err := f.GetCellValue("Users", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Asha", name)

	group, err := f.GetCellValue("Users", "D2")
	require.NoError(t, err)
	assert.Equal(t, "O+", group)
}

func TestExportCampRegistrations(t *testing.T) {
	svc := NewExportService(ExportDependencies{})

	registrations := []domain.CampRegistration{
		{UserName: "Ravi", UserPhone: "5550001", BloodGroup: domain.BloodGroupABNegative, RegisteredAt: time.Now()},
		{UserName: "Mira", UserPhone: "5550002", BloodGroup: domain.BloodGroupBPositive, RegisteredAt: time.Now()},
	}
	content, err := svc.ExportCampRegistrations(context.Background(), registrations)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Registrations")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ravi", rows[1][0])
	assert.Equal(t, "Mira", rows[2][0])
}

func TestExportCampRegistrationsEmpty(t *testing.T) {
	svc := NewExportService(ExportDependencies{})

	content, err := svc.ExportCampRegistrations(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Registrations")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
