package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
	"github.com/black-yen/sketer-workmoney/internal/core/services"
)

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  portssvc.ReportingSvcFacade
	loc      *time.Location
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	cfg := testPayrollConfig()
	suite.mockRepo = new(MockLedgerRepository)
	suite.loc = time.FixedZone("UTC+8", 8*60*60)
	suite.service = services.NewReportingService(suite.mockRepo, services.NewRosterService(cfg))
}

func (suite *ReportingServiceTestSuite) marchEntries() []domain.LedgerEntry {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, suite.loc) }
	return []domain.LedgerEntry{
		{EntryID: "e1", Date: day(10), CoachName: "莊祥霖", Quantity: 3, BaseAmount: 540, ShoesQty: 1, EquipmentBonus: 500, TotalAmount: 1040},
		{EntryID: "e2", Date: day(12), CoachName: "測試教練", Quantity: 1, BaseAmount: 400, TotalAmount: 400},
		{EntryID: "e3", Date: day(12), CoachName: "莊祥霖", IsDeduction: true, BaseAmount: -400, TotalAmount: -400},
		{EntryID: "e4", Date: time.Date(2024, 2, 28, 0, 0, 0, 0, suite.loc), CoachName: "莊祥霖", Quantity: 2, BaseAmount: 480, TotalAmount: 480},
	}
}

func (suite *ReportingServiceTestSuite) TestAggregate_SumsMatchEntries() {
	summaries := services.Aggregate(suite.marchEntries())

	suite.Require().Len(summaries, 2)
	// Sorted by coach name (byte order) for stable reports.
	suite.Equal("測試教練", summaries[0].CoachName)
	suite.Equal("莊祥霖", summaries[1].CoachName)

	var total int64
	for _, s := range summaries {
		total += s.TotalAmount
	}
	var expected int64
	for _, e := range suite.marchEntries() {
		expected += e.TotalAmount
	}
	suite.Equal(expected, total)
}

func (suite *ReportingServiceTestSuite) TestAggregate_EquipmentRowsDoNotInflateHeadcount() {
	entries := []domain.LedgerEntry{
		{EntryID: "t1", CoachName: "莊祥霖", Quantity: 3, BaseAmount: 540, TotalAmount: 540},
		// Pure equipment sale: zero quantity, counts ride in the qty columns.
		{EntryID: "s1", CoachName: "莊祥霖", ItemLabel: "鞋子", ShoesQty: 2, EquipmentBonus: 1000, TotalAmount: 1000},
	}

	summaries := services.Aggregate(entries)

	suite.Require().Len(summaries, 1)
	suite.Equal(int64(3), summaries[0].HeadcountSum)
	suite.Equal(int64(2), summaries[0].ShoesSum)
	suite.Equal(int64(1540), summaries[0].TotalAmount)
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_AdminSeesAllCoaches() {
	ctx := context.Background()
	suite.mockRepo.On("ListAll", ctx).Return(suite.marchEntries(), nil).Once()

	summaries, err := suite.service.MonthlySummary(ctx, "莊祥霖", 2024, 3)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 2)

	byName := make(map[string]domain.CoachSummary)
	for _, s := range summaries {
		byName[s.CoachName] = s
	}
	// The February entry is outside the requested month.
	suite.Equal(int64(640), byName["莊祥霖"].TotalAmount)
	suite.Equal(2, byName["莊祥霖"].EntryCount)
	suite.Equal(int64(1), byName["莊祥霖"].ShoesSum)
	suite.Equal(int64(400), byName["測試教練"].TotalAmount)
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_NonAdminPinnedToOwn() {
	ctx := context.Background()
	suite.mockRepo.On("ListAll", ctx).Return(suite.marchEntries(), nil).Once()

	summaries, err := suite.service.MonthlySummary(ctx, "測試教練", 2024, 3)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.Equal("測試教練", summaries[0].CoachName)
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_InvalidPeriod() {
	ctx := context.Background()

	_, err := suite.service.MonthlySummary(ctx, "莊祥霖", 2024, 13)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAll", ctx)
}

func (suite *ReportingServiceTestSuite) TestExportMonthlyCSV() {
	ctx := context.Background()
	suite.mockRepo.On("ListAll", ctx).Return(suite.marchEntries(), nil).Once()

	var buf bytes.Buffer
	err := suite.service.ExportMonthlyCSV(ctx, "莊祥霖", 2024, 3, &buf)

	suite.Require().NoError(err)

	records, err := csv.NewReader(&buf).ReadAll()
	suite.Require().NoError(err)
	suite.Require().Len(records, 3)
	suite.Equal([]string{"coach_name", "entry_count", "headcount_sum", "shoes_sum", "gear_sum", "total_amount"}, records[0])
	suite.Equal([]string{"測試教練", "1", "1", "0", "0", "400"}, records[1])
	suite.Equal([]string{"莊祥霖", "2", "3", "1", "0", "640"}, records[2])
}

func (suite *ReportingServiceTestSuite) TestExportMonthlyPDF() {
	ctx := context.Background()
	suite.mockRepo.On("ListAll", ctx).Return(suite.marchEntries(), nil).Once()

	var buf bytes.Buffer
	err := suite.service.ExportMonthlyPDF(ctx, "莊祥霖", 2024, 3, &buf)

	suite.Require().NoError(err)
	suite.True(bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
