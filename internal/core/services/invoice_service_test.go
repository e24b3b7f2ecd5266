package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/core/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	invoices  *MockInvoiceRepository
	directory *MockDirectoryRepository
	renderer  *MockInvoiceRenderer
	service   portssvc.InvoiceSvcFacade
	ctx       context.Context
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.invoices = new(MockInvoiceRepository)
	suite.directory = new(MockDirectoryRepository)
	suite.renderer = new(MockInvoiceRenderer)
	suite.service = services.NewInvoiceService(suite.invoices, suite.directory, suite.renderer, services.InvoiceSettings{})
	suite.ctx = context.Background()
}

func (suite *InvoiceServiceTestSuite) ownParties() {
	suite.directory.On("FindOrganisationByID", suite.ctx, "u1", "o1").Return(&domain.Organisation{OrganisationID: "o1", UserID: "u1", Name: "Asso"}, nil)
	suite.directory.On("FindClientByID", suite.ctx, "u1", "c1").Return(&domain.Client{ClientID: "c1", UserID: "u1", Name: "Client"}, nil)
}

func line(desc, qty, price, rate string) dto.InvoiceItemRequest {
	return dto.InvoiceItemRequest{Description: &desc, Quantity: amount(qty), UnitPrice: amount(price), TaxRate: amount(rate)}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *InvoiceServiceTestSuite) TestBuildInvoice_FirstInvoiceScenario() {
	suite.ownParties()
	suite.invoices.On("CreateInvoice", suite.ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	inv, err := suite.service.BuildInvoice(suite.ctx, "u1", dto.CreateInvoiceRequest{
		OrganisationID: "o1",
		ClientID:       "c1",
		Items:          []dto.InvoiceItemRequest{line("Atelier", "2", "10", "20"), line("Livret", "1", "5", "5.5")},
	})

	suite.Require().NoError(err)
	suite.Equal("FAC-0001", inv.Number)
	suite.True(inv.Subtotal.Equal(dec("25")), inv.Subtotal.String())
	suite.True(inv.TaxAmount.Equal(dec("4.275")), inv.TaxAmount.String())
	suite.True(inv.Total.Equal(dec("29.275")), inv.Total.String())
	suite.Equal(domain.InvoiceDraft, inv.Status)
	suite.Require().Len(inv.Items, 2)
	suite.Equal(0, inv.Items[0].Position)
	suite.Equal(inv.InvoiceID, inv.Items[1].InvoiceID)
	suite.Equal(inv.Date.AddDate(0, 0, 30), inv.DueDate)
}

func (suite *InvoiceServiceTestSuite) TestBuildInvoice_SequentialNumbers() {
	suite.ownParties()
	suite.invoices.On("CreateInvoice", suite.ctx, mock.Anything).Return(nil)

	req := dto.CreateInvoiceRequest{OrganisationID: "o1", ClientID: "c1", Items: []dto.InvoiceItemRequest{line("x", "1", "1", "0")}}
	for _, want := range []string{"FAC-0001", "FAC-0002", "FAC-0003"} {
		inv, err := suite.service.BuildInvoice(suite.ctx, "u1", req)
		suite.Require().NoError(err)
		suite.Equal(want, inv.Number)
	}
}

func (suite *InvoiceServiceTestSuite) TestBuildInvoice_MixedRatesStayConsistent() {
	suite.ownParties()
	suite.invoices.On("CreateInvoice", suite.ctx, mock.Anything).Return(nil).Once()

	inv, err := suite.service.BuildInvoice(suite.ctx, "u1", dto.CreateInvoiceRequest{
		OrganisationID: "o1",
		ClientID:       "c1",
		Items: []dto.InvoiceItemRequest{
			line("a", "3", "19.99", "20"),
			line("b", "0.5", "80", "5.5"),
			line("c", "7", "1.13", "0"),
			line("d", "0", "50", "10"),
		},
	})
	suite.Require().NoError(err)

	sum := decimal.Zero
	for _, item := range inv.Items {
		suite.True(item.Total.Equal(item.Subtotal.Add(item.TaxAmount)))
		sum = sum.Add(item.Total)
	}
	suite.True(inv.Total.Equal(sum))
	suite.True(inv.Total.Equal(inv.Subtotal.Add(inv.TaxAmount)))
	suite.True(inv.Items[3].Total.IsZero())
}

func (suite *InvoiceServiceTestSuite) TestBuildInvoice_ArticleDefaults() {
	suite.ownParties()
	desc := "Formation premiers secours"
	suite.directory.On("FindArticlesByIDs", suite.ctx, "u1", []string{"a1"}).Return(map[string]domain.Article{
		"a1": {ArticleID: "a1", Name: "PSC1", Description: &desc, Price: dec("60"), TaxRate: dec("20")},
	}, nil).Once()
	suite.invoices.On("CreateInvoice", suite.ctx, mock.Anything).Return(nil).Once()

	articleID := "a1"
	override := dec("50")
	inv, err := suite.service.BuildInvoice(suite.ctx, "u1", dto.CreateInvoiceRequest{
		OrganisationID: "o1",
		ClientID:       "c1",
		Items:          []dto.InvoiceItemRequest{{ArticleID: &articleID, Quantity: amount("2"), UnitPrice: &override}},
	})

	suite.Require().NoError(err)
	item := inv.Items[0]
	suite.Equal(desc, item.Description)
	suite.True(item.UnitPrice.Equal(dec("50")))
	suite.True(item.TaxRate.Equal(dec("20")))
	suite.True(item.Total.Equal(dec("120")))
	suite.Equal("a1", *item.ArticleID)
}

func (suite *InvoiceServiceTestSuite) TestBuildInvoice_ForeignReferencesAreNotFound() {
	suite.directory.On("FindOrganisationByID", suite.ctx, "u1", "o-other").Return(nil, apperrors.ErrNotFound).Once()
	_, err := suite.service.BuildInvoice(suite.ctx, "u1", dto.CreateInvoiceRequest{
		OrganisationID: "o-other", ClientID: "c1", Items: []dto.InvoiceItemRequest{line("x", "1", "1", "0")},
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.ownParties()
	suite.directory.On("FindClientByID", suite.ctx, "u1", "c-other").Return(nil, apperrors.ErrNotFound).Once()
	_, err = suite.service.BuildInvoice(suite.ctx, "u1", dto.CreateInvoiceRequest{
		OrganisationID: "o1", ClientID: "c-other", Items: []dto.InvoiceItemRequest{line("x", "1", "1", "0")},
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)

	articleID := "a-other"
	suite.directory.On("FindArticlesByIDs", suite.ctx, "u1", []string{"a-other"}).Return(map[string]domain.Article{}, nil).Once()
	_, err = suite.service.BuildInvoice(suite.ctx, "u1", dto.CreateInvoiceRequest{
		OrganisationID: "o1", ClientID: "c1", Items: []dto.InvoiceItemRequest{{ArticleID: &articleID, Quantity: amount("1")}},
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.invoices.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestBuildInvoice_Validation() {
	suite.ownParties()
	bad := []dto.CreateInvoiceRequest{
		{OrganisationID: "o1", ClientID: "c1"},
		{OrganisationID: "o1", ClientID: "c1", Items: []dto.InvoiceItemRequest{line("x", "-1", "1", "0")}},
		{OrganisationID: "o1", ClientID: "c1", Items: []dto.InvoiceItemRequest{line("x", "1", "-1", "0")}},
		{OrganisationID: "o1", ClientID: "c1", Items: []dto.InvoiceItemRequest{line("x", "1", "1", "101")}},
		{OrganisationID: "o1", ClientID: "c1", Items: []dto.InvoiceItemRequest{{Quantity: amount("1"), UnitPrice: amount("1"), TaxRate: amount("0")}}},
	}
	for _, req := range bad {
		_, err := suite.service.BuildInvoice(suite.ctx, "u1", req)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	status := "archived"
	_, err := suite.service.BuildInvoice(suite.ctx, "u1", dto.CreateInvoiceRequest{
		OrganisationID: "o1", ClientID: "c1", Status: &status, Items: []dto.InvoiceItemRequest{line("x", "1", "1", "0")},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestBuildInvoice_RetriesNumberCollision() {
	suite.ownParties()
	suite.invoices.On("CreateInvoice", suite.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Twice()
	suite.invoices.On("CreateInvoice", suite.ctx, mock.Anything).Return(nil).Once()

	inv, err := suite.service.BuildInvoice(suite.ctx, "u1", dto.CreateInvoiceRequest{
		OrganisationID: "o1", ClientID: "c1", Items: []dto.InvoiceItemRequest{line("x", "1", "1", "0")},
	})

	suite.Require().NoError(err)
	suite.Equal("FAC-0001", inv.Number)
	suite.invoices.AssertNumberOfCalls(suite.T(), "CreateInvoice", 3)
}

func (suite *InvoiceServiceTestSuite) TestBuildInvoice_GivesUpAfterRepeatedCollisions() {
	suite.ownParties()
	suite.invoices.On("CreateInvoice", suite.ctx, mock.Anything).Return(apperrors.ErrDuplicate)

	_, err := suite.service.BuildInvoice(suite.ctx, "u1", dto.CreateInvoiceRequest{
		OrganisationID: "o1", ClientID: "c1", Items: []dto.InvoiceItemRequest{line("x", "1", "1", "0")},
	})

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.invoices.AssertNumberOfCalls(suite.T(), "CreateInvoice", 3)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_ReplacesAllItems() {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	existing := &domain.Invoice{
		InvoiceID: "i1", UserID: "u1", Number: "FAC-0004", OrganisationID: "o1", ClientID: "c1",
		Date: date, DueDate: date.AddDate(0, 0, 30), Status: domain.InvoiceDraft,
	}
	existing.SetItems([]domain.InvoiceItem{{ItemID: "old", Subtotal: dec("10"), TaxAmount: dec("2"), Total: dec("12")}})
	suite.invoices.On("FindInvoiceByID", suite.ctx, "u1", "i1").Return(existing, nil).Once()
	suite.invoices.On("UpdateInvoice", suite.ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return len(inv.Items) == 1 && inv.Items[0].ItemID != "old" && inv.Total.Equal(dec("36")) && inv.Number == "FAC-0004"
	}), true).Return(nil).Once()

	status := "sent"
	inv, err := suite.service.UpdateInvoice(suite.ctx, "u1", "i1", dto.UpdateInvoiceRequest{
		Status: &status,
		Items:  []dto.InvoiceItemRequest{line("Nouvelle ligne", "3", "10", "20")},
	})

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceSent, inv.Status)
	suite.True(inv.Subtotal.Equal(dec("30")))
	suite.invoices.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_HeaderOnlyKeepsItems() {
	existing := &domain.Invoice{InvoiceID: "i1", UserID: "u1", Status: domain.InvoicePaid, Date: time.Now(), DueDate: time.Now()}
	suite.invoices.On("FindInvoiceByID", suite.ctx, "u1", "i1").Return(existing, nil).Once()
	suite.invoices.On("UpdateInvoice", suite.ctx, mock.Anything, false).Return(nil).Once()

	// Any status may be set, including going back to draft.
	status := "draft"
	_, err := suite.service.UpdateInvoice(suite.ctx, "u1", "i1", dto.UpdateInvoiceRequest{Status: &status})

	suite.Require().NoError(err)
	suite.invoices.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestNextInvoiceNumber() {
	last := "FAC-0041"
	suite.invoices.On("FindLatestInvoiceNumber", suite.ctx, "u1").Return(&last, nil).Once()
	suite.invoices.On("FindLatestInvoiceNumber", suite.ctx, "u2").Return(nil, nil).Once()

	next, err := suite.service.NextInvoiceNumber(suite.ctx, "u1")
	suite.Require().NoError(err)
	suite.Equal("FAC-0042", next)

	first, err := suite.service.NextInvoiceNumber(suite.ctx, "u2")
	suite.Require().NoError(err)
	suite.Equal("FAC-0001", first)
}

func (suite *InvoiceServiceTestSuite) TestRenderInvoicePDF() {
	suite.ownParties()
	inv := &domain.Invoice{InvoiceID: "i1", UserID: "u1", Number: "FAC-0007", OrganisationID: "o1", ClientID: "c1"}
	suite.invoices.On("FindInvoiceByID", suite.ctx, "u1", "i1").Return(inv, nil).Once()
	suite.renderer.On("Render", mock.MatchedBy(func(doc domain.InvoiceDocument) bool {
		return doc.Invoice.Number == "FAC-0007" && doc.Organisation.Name == "Asso" && doc.Client.Name == "Client"
	})).Return([]byte("%PDF-1.3"), nil).Once()

	pdf, name, err := suite.service.RenderInvoicePDF(suite.ctx, "u1", "i1")

	suite.Require().NoError(err)
	suite.Equal("facture-FAC-0007.pdf", name)
	suite.Equal([]byte("%PDF-1.3"), pdf)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
