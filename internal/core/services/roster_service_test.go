package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
	"github.com/black-yen/sketer-workmoney/internal/core/services"
)

// --- Test Suite ---
type RosterServiceTestSuite struct {
	suite.Suite
	service portssvc.RosterSvcFacade
}

func (suite *RosterServiceTestSuite) SetupTest() {
	suite.service = services.NewRosterService(testPayrollConfig())
}

func (suite *RosterServiceTestSuite) TestFindCoach() {
	ctx := context.Background()

	coach, err := suite.service.FindCoach(ctx, "莊祥霖")
	suite.Require().NoError(err)
	suite.Equal("主教", coach.Role)
	suite.True(coach.IsAdmin)

	_, err = suite.service.FindCoach(ctx, "路人")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RosterServiceTestSuite) TestIsAdmin() {
	ctx := context.Background()
	suite.True(suite.service.IsAdmin(ctx, "莊祥霖"))
	suite.False(suite.service.IsAdmin(ctx, "測試教練"))
	suite.False(suite.service.IsAdmin(ctx, "路人"))
}

func (suite *RosterServiceTestSuite) TestUpdateDefaultRole_SelfChangeAllowed() {
	ctx := context.Background()

	coach, err := suite.service.UpdateDefaultRole(ctx, "測試教練", "測試教練", "主教")

	suite.Require().NoError(err)
	suite.Equal("主教", coach.Role)

	// The change survives subsequent lookups.
	found, err := suite.service.FindCoach(ctx, "測試教練")
	suite.Require().NoError(err)
	suite.Equal("主教", found.Role)
}

func (suite *RosterServiceTestSuite) TestUpdateDefaultRole_AdminChangesOther() {
	ctx := context.Background()

	coach, err := suite.service.UpdateDefaultRole(ctx, "莊祥霖", "測試教練", "主教")

	suite.Require().NoError(err)
	suite.Equal("主教", coach.Role)
}

func (suite *RosterServiceTestSuite) TestUpdateDefaultRole_NonAdminForbidden() {
	ctx := context.Background()

	_, err := suite.service.UpdateDefaultRole(ctx, "測試教練", "莊祥霖", "助教")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	// The target's role is untouched.
	coach, findErr := suite.service.FindCoach(ctx, "莊祥霖")
	suite.Require().NoError(findErr)
	suite.Equal("主教", coach.Role)
}

func (suite *RosterServiceTestSuite) TestUpdateDefaultRole_UnknownRole() {
	ctx := context.Background()

	_, err := suite.service.UpdateDefaultRole(ctx, "莊祥霖", "測試教練", "不存在的角色")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RosterServiceTestSuite) TestUpdateDefaultRole_UnknownTarget() {
	ctx := context.Background()

	_, err := suite.service.UpdateDefaultRole(ctx, "莊祥霖", "路人", "主教")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RosterServiceTestSuite) TestListCoaches_Snapshot() {
	ctx := context.Background()

	coaches := suite.service.ListCoaches(ctx)
	suite.Require().Len(coaches, 2)

	// Mutating the snapshot never touches the roster.
	coaches[0].Role = "改掉了"
	again := suite.service.ListCoaches(ctx)
	suite.NotEqual("改掉了", again[0].Role)
}

func TestRosterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RosterServiceTestSuite))
}
