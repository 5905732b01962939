package services_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sai-kurakula/banks-etl/internal/apperrors"
	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	portsrepo "github.com/Sai-kurakula/banks-etl/internal/core/ports/repositories"
	"github.com/Sai-kurakula/banks-etl/internal/core/services"
	"github.com/Sai-kurakula/banks-etl/internal/platform/auditlog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mocks for the pipeline collaborators ---

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, url string) ([]domain.BankRecord, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankRecord), args.Error(1)
}

type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Transform(ctx context.Context, records []domain.BankRecord) ([]domain.EnrichedBankRecord, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnrichedBankRecord), args.Error(1)
}

type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) LoadToCSV(ctx context.Context, banks []domain.EnrichedBankRecord, path string) error {
	args := m.Called(ctx, banks, path)
	return args.Error(0)
}

func (m *MockLoader) LoadToDB(ctx context.Context, repo portsrepo.BankWriter, banks []domain.EnrichedBankRecord, tableName string) error {
	args := m.Called(ctx, repo, banks, tableName)
	return args.Error(0)
}

type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) ReplaceBanks(ctx context.Context, tableName string, banks []domain.EnrichedBankRecord) error {
	args := m.Called(ctx, tableName, banks)
	return args.Error(0)
}

func (m *MockBankRepository) RunQuery(ctx context.Context, query string) (*domain.QueryResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QueryResult), args.Error(1)
}

func (m *MockBankRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Test Suite ---

type PipelineServiceTestSuite struct {
	suite.Suite
	mockExtractor   *MockExtractor
	mockTransformer *MockTransformer
	mockLoader      *MockLoader
	mockRepo        *MockBankRepository
	queryOut        *bytes.Buffer
	auditPath       string
	service         *services.PipelineService
}

func (suite *PipelineServiceTestSuite) SetupTest() {
	suite.mockExtractor = new(MockExtractor)
	suite.mockTransformer = new(MockTransformer)
	suite.mockLoader = new(MockLoader)
	suite.mockRepo = new(MockBankRepository)
	suite.queryOut = new(bytes.Buffer)
	suite.auditPath = filepath.Join(suite.T().TempDir(), "code_log.txt")

	opener := func(ctx context.Context) (portsrepo.BankRepositoryFacade, error) {
		return suite.mockRepo, nil
	}
	suite.service = services.NewPipelineService(
		suite.mockExtractor,
		suite.mockTransformer,
		suite.mockLoader,
		opener,
		auditlog.New(suite.auditPath),
		suite.queryOut,
		nil,
	)
}

func (suite *PipelineServiceTestSuite) auditTrail() string {
	data, err := os.ReadFile(suite.auditPath)
	suite.Require().NoError(err)
	return string(data)
}

func (suite *PipelineServiceTestSuite) params() services.RunParams {
	return services.RunParams{
		SourceURL: "http://example.com/banks",
		CSVPath:   filepath.Join(suite.T().TempDir(), "banks.csv"),
		TableName: "Largest_banks",
		Queries:   []string{"SELECT AVG(MC_GBP_Billion) FROM Largest_banks"},
	}
}

func (suite *PipelineServiceTestSuite) TestRun_Success() {
	ctx := context.Background()
	params := suite.params()
	records := []domain.BankRecord{{Name: "Bank A", MarketCapUSD: "100"}}
	enriched := enrichedFixture()

	suite.mockExtractor.On("Extract", ctx, params.SourceURL).Return(records, nil).Once()
	suite.mockTransformer.On("Transform", ctx, records).Return(enriched, nil).Once()
	suite.mockLoader.On("LoadToCSV", ctx, enriched, params.CSVPath).Return(nil).Once()
	suite.mockLoader.On("LoadToDB", ctx, suite.mockRepo, enriched, params.TableName).Return(nil).Once()
	suite.mockRepo.On("RunQuery", ctx, params.Queries[0]).Return(&domain.QueryResult{
		Columns: []string{"AVG(MC_GBP_Billion)"},
		Rows:    [][]string{{"60"}},
	}, nil).Once()
	suite.mockRepo.On("Close").Return(nil).Once()

	err := suite.service.Run(ctx, params)

	suite.Require().NoError(err)
	suite.mockExtractor.AssertExpectations(suite.T())
	suite.mockTransformer.AssertExpectations(suite.T())
	suite.mockLoader.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())

	trail := suite.auditTrail()
	milestones := []string{
		"Preliminaries complete. Initiating ETL process",
		"Data extraction complete. Initiating Transformation process",
		"Data transformation complete. Initiating Loading process",
		"Data saved to CSV file",
		"SQL Connection initiated",
		"Data loaded to Database as a table, Executing queries",
		"Process Complete",
		"Server Connection Closed",
	}
	last := -1
	for _, milestone := range milestones {
		idx := strings.Index(trail, milestone)
		suite.Require().Greater(idx, last, "milestone %q out of order", milestone)
		last = idx
	}

	suite.Contains(suite.queryOut.String(), params.Queries[0])
	suite.Contains(suite.queryOut.String(), "60")
}

func (suite *PipelineServiceTestSuite) TestRun_TransformFailureStopsPipeline() {
	ctx := context.Background()
	params := suite.params()
	records := []domain.BankRecord{{Name: "Bank A", MarketCapUSD: "100"}}

	suite.mockExtractor.On("Extract", ctx, params.SourceURL).Return(records, nil).Once()
	suite.mockTransformer.On("Transform", ctx, records).Return(nil, apperrors.ErrMissingRate).Once()

	err := suite.service.Run(ctx, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingRate)

	// No loading happened and the trail stops at the extraction milestone.
	suite.mockLoader.AssertNotCalled(suite.T(), "LoadToCSV", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Close")
	trail := suite.auditTrail()
	suite.Contains(trail, "Data extraction complete. Initiating Transformation process")
	suite.NotContains(trail, "Data transformation complete")
	suite.NotContains(trail, "Server Connection Closed")
}

func (suite *PipelineServiceTestSuite) TestRun_DBLoadFailureReleasesHandle() {
	ctx := context.Background()
	params := suite.params()
	records := []domain.BankRecord{{Name: "Bank A", MarketCapUSD: "100"}}
	enriched := enrichedFixture()

	suite.mockExtractor.On("Extract", ctx, params.SourceURL).Return(records, nil).Once()
	suite.mockTransformer.On("Transform", ctx, records).Return(enriched, nil).Once()
	suite.mockLoader.On("LoadToCSV", ctx, enriched, params.CSVPath).Return(nil).Once()
	suite.mockLoader.On("LoadToDB", ctx, suite.mockRepo, enriched, params.TableName).Return(apperrors.ErrPersistence).Once()
	suite.mockRepo.On("Close").Return(nil).Once()

	err := suite.service.Run(ctx, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "RunQuery", mock.Anything, mock.Anything)

	trail := suite.auditTrail()
	suite.Contains(trail, "SQL Connection initiated")
	suite.NotContains(trail, "Process Complete")
	suite.NotContains(trail, "Server Connection Closed")
}

func TestPipelineServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PipelineServiceTestSuite))
}
