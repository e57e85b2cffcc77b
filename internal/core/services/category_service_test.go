package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvcFacade
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "  Food ", Description: "groceries"}

	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Food" && c.Description == "groceries" && c.CategoryID != "" && !c.CreatedAt.IsZero()
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Food", category.Name)
	suite.NotEmpty(category.CategoryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Duplicate() {
	ctx := context.Background()
	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(apperrors.ErrDuplicate).Once()

	category, err := suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Food"})

	suite.Nil(category)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_BlankName() {
	_, err := suite.service.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "   "})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_DefaultIsProtected() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByID", ctx, "def").
		Return(&domain.Category{CategoryID: "def", Name: domain.DefaultCategoryName}, nil).Once()

	err := suite.service.DeleteCategory(ctx, "def")

	suite.ErrorIs(err, apperrors.ErrProtectedCategory)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_Success() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByID", ctx, "c1").Return(&domain.Category{CategoryID: "c1", Name: "Food"}, nil).Once()
	suite.mockRepo.On("DeleteCategory", ctx, "c1").Return(nil).Once()

	suite.NoError(suite.service.DeleteCategory(ctx, "c1"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	suite.ErrorIs(suite.service.DeleteCategory(ctx, "missing"), apperrors.ErrNotFound)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_RenameDefaultIsProtected() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByID", ctx, "def").
		Return(&domain.Category{CategoryID: "def", Name: domain.DefaultCategoryName}, nil).Once()

	_, err := suite.service.UpdateCategory(ctx, "def", dto.UpdateCategoryRequest{Name: "Misc"})
	suite.ErrorIs(err, apperrors.ErrProtectedCategory)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_DefaultDescriptionCanChange() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByID", ctx, "def").
		Return(&domain.Category{CategoryID: "def", Name: domain.DefaultCategoryName}, nil).Once()
	suite.mockRepo.On("UpdateCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == domain.DefaultCategoryName && c.Description == "catch-all"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCategory(ctx, "def",
		dto.UpdateCategoryRequest{Name: domain.DefaultCategoryName, Description: "catch-all"})
	suite.Require().NoError(err)
	suite.Equal("catch-all", updated.Description)
}

func (suite *CategoryServiceTestSuite) TestEnsureDefault_ReturnsExisting() {
	ctx := context.Background()
	existing := &domain.Category{CategoryID: "def", Name: domain.DefaultCategoryName}
	suite.mockRepo.On("FindCategoryByName", ctx, domain.DefaultCategoryName).Return(existing, nil).Once()

	got, err := suite.service.EnsureDefault(ctx)
	suite.Require().NoError(err)
	suite.Equal(existing, got)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestEnsureDefault_CreatesWhenMissing() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByName", ctx, domain.DefaultCategoryName).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == domain.DefaultCategoryName
	})).Return(nil).Once()

	got, err := suite.service.EnsureDefault(ctx)
	suite.Require().NoError(err)
	suite.Equal(domain.DefaultCategoryName, got.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestEnsureDefault_ToleratesConcurrentCreation() {
	ctx := context.Background()
	winner := &domain.Category{CategoryID: "other", Name: domain.DefaultCategoryName}
	suite.mockRepo.On("FindCategoryByName", ctx, domain.DefaultCategoryName).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindCategoryByName", ctx, domain.DefaultCategoryName).Return(winner, nil).Once()

	got, err := suite.service.EnsureDefault(ctx)
	suite.Require().NoError(err)
	suite.Equal("other", got.CategoryID)
}

func (suite *CategoryServiceTestSuite) TestResolveName() {
	ctx := context.Background()
	suite.mockRepo.On("FindCategoryByID", ctx, "c1").Return(&domain.Category{CategoryID: "c1", Name: "Food"}, nil).Once()
	suite.mockRepo.On("FindCategoryByID", ctx, "gone").Return(nil, apperrors.ErrNotFound).Once()

	name, err := suite.service.ResolveName(ctx, "c1")
	suite.Require().NoError(err)
	suite.Equal("Food", name)

	_, err = suite.service.ResolveName(ctx, "gone")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CategoryServiceTestSuite) TestListCategories_NilBecomesEmpty() {
	ctx := context.Background()
	suite.mockRepo.On("ListCategories", ctx).Return(nil, nil).Once()

	categories, err := suite.service.ListCategories(ctx)
	suite.Require().NoError(err)
	suite.NotNil(categories)
	suite.Empty(categories)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

func TestCategoryService_CustomDefaultName(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := services.NewCategoryService(repo, services.WithDefaultCategoryName("Other"))

	repo.On("FindCategoryByID", ctx, "o").Return(&domain.Category{CategoryID: "o", Name: "Other"}, nil).Once()
	assert.ErrorIs(t, svc.DeleteCategory(ctx, "o"), apperrors.ErrProtectedCategory)
}
