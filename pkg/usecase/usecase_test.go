package usecase_test

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/infra"
	"github.com/secmon-lab/ecocoder/pkg/usecase"
)

const nestedLoopGo = `package main

func main() {
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			println(i, j)
		}
	}
}
`

type httpMock struct {
	mockDo func(req *http.Request) (*http.Response, error)
}

func (x *httpMock) Do(req *http.Request) (*http.Response, error) {
	return x.mockDo(req)
}

func newZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w := gt.R1(zw.Create(name)).NoError(t)
		gt.R1(io.WriteString(w, content)).NoError(t)
	}
	gt.NoError(t, zw.Close())
	return buf.Bytes()
}

func okResponse(body []byte) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

func hasRule(findings []model.Finding, id string) bool {
	for _, f := range findings {
		if f.RuleID == id {
			return true
		}
	}
	return false
}

func TestNew(t *testing.T) {
	uc := usecase.New(infra.New())
	gt.V(t, uc).NotEqual(nil)
}
