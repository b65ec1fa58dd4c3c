package csvfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/black-yen/sketer-workmoney/internal/adapters/rowstore/csvfile"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portsrepo "github.com/black-yen/sketer-workmoney/internal/core/ports/repositories"
)

// --- Test Suite ---
type CSVRepositoryTestSuite struct {
	suite.Suite
	repo portsrepo.LedgerRepositoryFacade
	path string
	loc  *time.Location
}

func (suite *CSVRepositoryTestSuite) SetupTest() {
	suite.path = filepath.Join(suite.T().TempDir(), "ledger.csv")
	suite.loc = time.FixedZone("UTC+8", 8*60*60)
	suite.repo = csvfile.NewCSVRepository(suite.path, suite.loc)
}

func (suite *CSVRepositoryTestSuite) entry(coach string, total int64) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, suite.loc),
		CoachName:   coach,
		Role:        "主教",
		ItemLabel:   "基礎",
		Quantity:    3,
		BaseAmount:  total,
		TotalAmount: total,
		CreatedAt:   time.Date(2024, 3, 15, 20, 30, 0, 0, suite.loc),
	}
}

func (suite *CSVRepositoryTestSuite) TestEnsureHeader_Idempotent() {
	ctx := context.Background()

	suite.Require().NoError(suite.repo.EnsureHeader(ctx))
	info, err := os.Stat(suite.path)
	suite.Require().NoError(err)
	headerSize := info.Size()

	// A second call leaves the existing file alone.
	suite.Require().NoError(suite.repo.EnsureHeader(ctx))
	info, err = os.Stat(suite.path)
	suite.Require().NoError(err)
	suite.Equal(headerSize, info.Size())
}

func (suite *CSVRepositoryTestSuite) TestAppendListRoundTrip() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.EnsureHeader(ctx))

	first := suite.entry("莊祥霖", 540)
	second := suite.entry("測試教練", 400)
	suite.Require().NoError(suite.repo.Append(ctx, first))
	suite.Require().NoError(suite.repo.Append(ctx, second))

	entries, err := suite.repo.ListAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)

	suite.Equal(first.EntryID, entries[0].EntryID)
	suite.Equal(first.CoachName, entries[0].CoachName)
	suite.Equal(first.TotalAmount, entries[0].TotalAmount)
	suite.True(first.Date.Equal(entries[0].Date))
	suite.True(first.CreatedAt.Equal(entries[0].CreatedAt))
	suite.Equal(second.EntryID, entries[1].EntryID)
}

func (suite *CSVRepositoryTestSuite) TestListAll_MissingFileIsEmpty() {
	entries, err := suite.repo.ListAll(context.Background())
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *CSVRepositoryTestSuite) TestListAll_SkipsMalformedRows() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.EnsureHeader(ctx))
	suite.Require().NoError(suite.repo.Append(ctx, suite.entry("莊祥霖", 540)))

	f, err := os.OpenFile(suite.path, os.O_APPEND|os.O_WRONLY, 0o644)
	suite.Require().NoError(err)
	_, err = f.WriteString("garbage,row\n")
	suite.Require().NoError(err)
	suite.Require().NoError(f.Close())

	entries, err := suite.repo.ListAll(ctx)
	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func (suite *CSVRepositoryTestSuite) TestDeleteByIDs() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.EnsureHeader(ctx))

	keep := suite.entry("莊祥霖", 540)
	doomed := suite.entry("測試教練", 400)
	suite.Require().NoError(suite.repo.Append(ctx, keep))
	suite.Require().NoError(suite.repo.Append(ctx, doomed))

	deleted, err := suite.repo.DeleteByIDs(ctx, []string{doomed.EntryID})
	suite.Require().NoError(err)
	suite.Equal(1, deleted)

	entries, err := suite.repo.ListAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(keep.EntryID, entries[0].EntryID)
}

func (suite *CSVRepositoryTestSuite) TestDeleteByIDs_AbsentIDIsNoOp() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.EnsureHeader(ctx))
	suite.Require().NoError(suite.repo.Append(ctx, suite.entry("莊祥霖", 540)))

	deleted, err := suite.repo.DeleteByIDs(ctx, []string{uuid.NewString()})
	suite.Require().NoError(err)
	suite.Equal(0, deleted)

	// Repeating the delete stays a no-op and the surviving row is intact.
	deleted, err = suite.repo.DeleteByIDs(ctx, []string{uuid.NewString()})
	suite.Require().NoError(err)
	suite.Equal(0, deleted)

	entries, err := suite.repo.ListAll(ctx)
	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func TestCSVRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CSVRepositoryTestSuite))
}
