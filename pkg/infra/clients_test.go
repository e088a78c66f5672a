package infra_test

import (
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/domain/mock"
	"github.com/secmon-lab/ecocoder/pkg/infra"
)

func TestNew(t *testing.T) {
	t.Run("without options", func(t *testing.T) {
		clients := infra.New()
		gt.V(t, clients.HTTPClient()).Equal(http.DefaultClient)
		gt.V(t, clients.GitHub()).Equal(nil)
		gt.V(t, clients.BigQuery()).Equal(nil)
		gt.V(t, clients.Storage()).Equal(nil)
		gt.V(t, clients.Policy()).Equal(nil)
	})

	t.Run("with options", func(t *testing.T) {
		mockGH := &mock.GitHubMock{}
		mockBQ := &mock.BigQueryMock{}
		mockStorage := &mock.StorageMock{}
		mockPolicy := &mock.PolicyMock{}
		mockHTTP := &mockHTTPClient{}

		clients := infra.New(
			infra.WithGitHub(mockGH),
			infra.WithBigQuery(mockBQ),
			infra.WithStorage(mockStorage),
			infra.WithPolicy(mockPolicy),
			infra.WithHTTPClient(mockHTTP),
		)

		gt.V(t, clients.GitHub()).Equal(mockGH)
		gt.V(t, clients.BigQuery()).Equal(mockBQ)
		gt.V(t, clients.Storage()).Equal(mockStorage)
		gt.V(t, clients.Policy()).Equal(mockPolicy)
		gt.V(t, clients.HTTPClient()).Equal(mockHTTP)
	})
}

type mockHTTPClient struct{}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return nil, nil
}
