package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/core/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DirectoryServiceTestSuite struct {
	suite.Suite
	repo    *MockDirectoryRepository
	service portssvc.DirectorySvcFacade
	ctx     context.Context
}

func (suite *DirectoryServiceTestSuite) SetupTest() {
	suite.repo = new(MockDirectoryRepository)
	suite.service = services.NewDirectoryService(suite.repo)
	suite.ctx = context.Background()
}

func (suite *DirectoryServiceTestSuite) TestCreateOrganisation() {
	suite.repo.On("SaveOrganisation", suite.ctx, mock.MatchedBy(func(o domain.Organisation) bool {
		return o.UserID == "u1" && o.Name == "Asso" && o.OrganisationID != ""
	})).Return(nil).Once()

	org, err := suite.service.CreateOrganisation(suite.ctx, "u1", dto.OrganisationRequest{Name: "Asso"})
	suite.Require().NoError(err)
	suite.Equal("u1", org.CreatedBy)

	_, err = suite.service.CreateOrganisation(suite.ctx, "u1", dto.OrganisationRequest{Name: " "})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DirectoryServiceTestSuite) TestUpdateClient_OtherOwnerIsNotFound() {
	suite.repo.On("FindClientByID", suite.ctx, "u2", "c1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateClient(suite.ctx, "u2", "c1", dto.ClientRequest{Name: "Bob"})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.repo.AssertNotCalled(suite.T(), "UpdateClient", mock.Anything, mock.Anything)
}

func (suite *DirectoryServiceTestSuite) TestCreateArticle_DefaultsTaxRate() {
	suite.repo.On("SaveArticle", suite.ctx, mock.MatchedBy(func(a domain.Article) bool {
		return a.TaxRate.Equal(decimal.NewFromInt(20)) && a.IsActive
	})).Return(nil).Once()

	article, err := suite.service.CreateArticle(suite.ctx, "u1", dto.ArticleRequest{Name: "Heure", Price: amount("45")})

	suite.Require().NoError(err)
	suite.True(article.Price.Equal(decimal.NewFromInt(45)))
}

func (suite *DirectoryServiceTestSuite) TestCreateArticle_Validation() {
	_, err := suite.service.CreateArticle(suite.ctx, "u1", dto.ArticleRequest{Name: "x", Price: amount("-1")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateArticle(suite.ctx, "u1", dto.ArticleRequest{Name: "x", Price: amount("1"), TaxRate: amount("120")})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DirectoryServiceTestSuite) TestUpdateArticle_KeepsActiveFlag() {
	existing := &domain.Article{ArticleID: "a1", UserID: "u1", Name: "Old", Price: decimal.NewFromInt(10), TaxRate: decimal.NewFromInt(20), IsActive: false}
	suite.repo.On("FindArticleByID", suite.ctx, "u1", "a1").Return(existing, nil).Once()
	suite.repo.On("UpdateArticle", suite.ctx, mock.MatchedBy(func(a domain.Article) bool {
		return a.Name == "New" && a.Price.Equal(decimal.NewFromInt(12)) && !a.IsActive
	})).Return(nil).Once()

	_, err := suite.service.UpdateArticle(suite.ctx, "u1", "a1", dto.ArticleRequest{Name: "New", Price: amount("12")})

	suite.Require().NoError(err)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *DirectoryServiceTestSuite) TestDeleteOrganisation_Referenced() {
	suite.repo.On("DeleteOrganisation", suite.ctx, "u1", "o1").Return(apperrors.ErrConflict).Once()

	err := suite.service.DeleteOrganisation(suite.ctx, "u1", "o1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestDirectoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DirectoryServiceTestSuite))
}
