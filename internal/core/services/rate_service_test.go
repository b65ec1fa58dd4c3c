package services_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
	"github.com/black-yen/sketer-workmoney/internal/core/services"
)

// testPayrollConfig mirrors the default deployment document, trimmed to the
// roles and items the tests exercise.
func testPayrollConfig() domain.PayrollConfig {
	return domain.PayrollConfig{
		Rates: domain.RateTable{
			"主教": {"基礎": 180, "進階": 195, "高級": 240, "速樁": 250},
			"助教": {"基礎": 400, "進階": 400, "高級": 400, "進高合": 500},
		},
		Extras: domain.ExtrasTable{"鞋子": 500, "護具": 100},
		Roles: map[string]domain.RoleConfig{
			"主教": {ScalesWithHeadcount: true},
			"助教": {ScalesWithHeadcount: false},
		},
		Coaches: []domain.Coach{
			{Name: "莊祥霖", Role: "主教", IsAdmin: true},
			{Name: "測試教練", Role: "助教", IsAdmin: false},
		},
		Equipment: domain.EquipmentConfig{ShoesItem: "鞋子", GearItem: "護具"},
	}
}

func int64Ptr(v int64) *int64 { return &v }

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	service portssvc.RateSvcFacade
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.service = services.NewRateService(testPayrollConfig())
}

func (suite *RateServiceTestSuite) TestResolve_RoleTableFirst() {
	price, err := suite.service.Resolve("主教", "基礎", nil)
	suite.Require().NoError(err)
	suite.Equal(int64(180), price)

	price, err = suite.service.Resolve("助教", "基礎", nil)
	suite.Require().NoError(err)
	suite.Equal(int64(400), price)
}

func (suite *RateServiceTestSuite) TestResolve_ExtrasFallback() {
	// Equipment is priced role-independently.
	price, err := suite.service.Resolve("主教", "鞋子", nil)
	suite.Require().NoError(err)
	suite.Equal(int64(500), price)

	// An unknown role still reaches the extras table.
	price, err = suite.service.Resolve("不存在的角色", "護具", nil)
	suite.Require().NoError(err)
	suite.Equal(int64(100), price)
}

func (suite *RateServiceTestSuite) TestResolve_CustomItemRequiresPrice() {
	_, err := suite.service.Resolve("主教", "臨時活動", nil)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	price, err := suite.service.Resolve("主教", "臨時活動", int64Ptr(250))
	suite.Require().NoError(err)
	suite.Equal(int64(250), price)
}

func (suite *RateServiceTestSuite) TestResolve_NegativeCustomPrice() {
	_, err := suite.service.Resolve("主教", "臨時活動", int64Ptr(-1))
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestItemsForRole_UnknownRoleEmptySet() {
	items := suite.service.ItemsForRole("不存在的角色")
	suite.Require().NotNil(items)
	suite.Empty(items)
}

func (suite *RateServiceTestSuite) TestItemsForRole_ReturnsCopy() {
	items := suite.service.ItemsForRole("主教")
	suite.Equal(int64(180), items["基礎"])

	items["基礎"] = 9999

	again := suite.service.ItemsForRole("主教")
	suite.Equal(int64(180), again["基礎"])
}

func (suite *RateServiceTestSuite) TestExtras_ReturnsCopy() {
	extras := suite.service.Extras()
	suite.Equal(int64(500), extras["鞋子"])

	extras["鞋子"] = 0

	suite.Equal(int64(500), suite.service.Extras()["鞋子"])
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
